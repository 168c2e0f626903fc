package renderer

import "github.com/charmbracelet/lipgloss"

// Dracula palette
var (
	colorBackground = lipgloss.Color("#282a36")
	colorForeground = lipgloss.Color("#f8f8f2")
	colorSelection  = lipgloss.Color("#44475a")
	colorComment    = lipgloss.Color("#6272a4")
	colorCyan       = lipgloss.Color("#8be9fd")
	colorGreen      = lipgloss.Color("#50fa7b")
	colorOrange     = lipgloss.Color("#ffb86c")
	colorPink       = lipgloss.Color("#ff79c6")
	colorPurple     = lipgloss.Color("#bd93f9")
	colorRed        = lipgloss.Color("#ff5555")
	colorYellow     = lipgloss.Color("#f1fa8c")
)

// Palette exposes the colours to other terminal views (setup wizard)
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Selection  lipgloss.Color
	Comment    lipgloss.Color
	Cyan       lipgloss.Color
	Green      lipgloss.Color
	Purple     lipgloss.Color
	Red        lipgloss.Color
}

// Dracula returns the palette used across the CLI
func Dracula() Palette {
	return Palette{
		Background: colorBackground,
		Foreground: colorForeground,
		Selection:  colorSelection,
		Comment:    colorComment,
		Cyan:       colorCyan,
		Green:      colorGreen,
		Purple:     colorPurple,
		Red:        colorRed,
	}
}

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	temp    lipgloss.Style
	desc    lipgloss.Style
	humid   lipgloss.Style
	wind    lipgloss.Style
	divider lipgloss.Style
	errText lipgloss.Style
	border  lipgloss.Style
	header  lipgloss.Style
}

func newStyles() styles {
	return styles{
		heading: lipgloss.NewStyle().Foreground(colorPurple).Bold(true),
		label:   lipgloss.NewStyle().Foreground(colorCyan),
		temp:    lipgloss.NewStyle().Foreground(colorYellow),
		desc:    lipgloss.NewStyle().Foreground(colorGreen),
		humid:   lipgloss.NewStyle().Foreground(colorOrange),
		wind:    lipgloss.NewStyle().Foreground(colorPink),
		divider: lipgloss.NewStyle().Foreground(colorComment),
		errText: lipgloss.NewStyle().Foreground(colorRed),
		border:  lipgloss.NewStyle().Foreground(colorPurple),
		header:  lipgloss.NewStyle().Foreground(colorPurple).Bold(true).Padding(0, 1),
	}
}
