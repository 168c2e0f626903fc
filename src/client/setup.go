package client

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/renderer"
)

// checkTimeout bounds the setup wizard's connection test
const checkTimeout = 10 * time.Second

// Setup wizard fields, in tab order
const (
	fieldURL = iota
	fieldSave
	fieldTest
	fieldCount
)

// setupModel is the bubbletea model for the setup wizard
type setupModel struct {
	ctx          context.Context
	serverURL    string
	focusedField int
	testing      bool
	testResult   string
	testSuccess  bool
	cancelled    bool
	done         bool
	saveToConfig bool
}

// checkMsg carries the outcome of a connection test
type checkMsg struct {
	success bool
	result  string
}

// newSetupModel creates a setup model prefilled with the current server
func newSetupModel(ctx context.Context, current string) setupModel {
	return setupModel{
		ctx:          ctx,
		serverURL:    current,
		saveToConfig: true,
	}
}

// Init initializes the setup model
func (m setupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the setup wizard
func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkMsg:
		m.testing = false
		m.testSuccess = msg.success
		m.testResult = msg.result
		if msg.success {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			switch m.focusedField {
			case fieldURL, fieldTest:
				if m.serverURL != "" && !m.testing {
					m.testing = true
					return m, checkServer(m.ctx, normalizeServerURL(m.serverURL))
				}
			case fieldSave:
				m.saveToConfig = !m.saveToConfig
			}

		case "tab", "down":
			m.focusedField = (m.focusedField + 1) % fieldCount

		case "shift+tab", "up":
			m.focusedField = (m.focusedField + fieldCount - 1) % fieldCount

		case "backspace":
			if m.focusedField == fieldURL && len(m.serverURL) > 0 {
				_, size := utf8.DecodeLastRuneInString(m.serverURL)
				m.serverURL = m.serverURL[:len(m.serverURL)-size]
			}

		case " ":
			if m.focusedField == fieldSave {
				m.saveToConfig = !m.saveToConfig
			}

		default:
			if m.focusedField == fieldURL && msg.Type == tea.KeyRunes {
				m.serverURL += string(msg.Runes)
			}
		}
	}

	return m, nil
}

// View renders the setup wizard
func (m setupModel) View() string {
	p := renderer.Dracula()

	titleStyle := lipgloss.NewStyle().Foreground(p.Purple).Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Purple).
		Padding(1, 2)
	labelStyle := lipgloss.NewStyle().Foreground(p.Foreground)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Comment).
		Padding(0, 1).
		Width(50)
	focusedInputStyle := inputStyle.BorderForeground(p.Cyan)
	buttonStyle := lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Selection).
		Padding(0, 2)
	focusedButtonStyle := buttonStyle.Background(p.Purple).Foreground(p.Background)
	successStyle := lipgloss.NewStyle().Foreground(p.Green)
	errorStyle := lipgloss.NewStyle().Foreground(p.Red)
	helpStyle := lipgloss.NewStyle().Foreground(p.Comment)

	var b strings.Builder

	b.WriteString(titleStyle.Render("WEATHER CLI SETUP"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Server URL:"))
	b.WriteString("\n")

	inputVal := m.serverURL
	if inputVal == "" {
		inputVal = "http://"
	}
	if m.focusedField == fieldURL {
		b.WriteString(focusedInputStyle.Render(inputVal + "_"))
	} else {
		b.WriteString(inputStyle.Render(inputVal))
	}
	b.WriteString("\n\n")

	checkbox := "[ ]"
	if m.saveToConfig {
		checkbox = "[x]"
	}
	checkboxText := checkbox + " Save to configuration"
	if m.focusedField == fieldSave {
		b.WriteString(focusedButtonStyle.Render(checkboxText))
	} else {
		b.WriteString(labelStyle.Render(checkboxText))
	}
	b.WriteString("\n\n")

	if m.testing {
		b.WriteString(labelStyle.Render("Testing connection..."))
		b.WriteString("\n\n")
	} else if m.testResult != "" {
		if m.testSuccess {
			b.WriteString(successStyle.Render("✓ " + m.testResult))
		} else {
			b.WriteString(errorStyle.Render("✗ " + m.testResult))
		}
		b.WriteString("\n\n")
	}

	testBtn := "[Test Connection]"
	if m.focusedField == fieldTest {
		b.WriteString(focusedButtonStyle.Render(testBtn))
	} else {
		b.WriteString(buttonStyle.Render(testBtn))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Tab/↑↓: navigate • Enter: select • Esc: cancel"))

	return boxStyle.Render(b.String())
}

// normalizeServerURL adds a scheme when missing and drops a trailing slash
func normalizeServerURL(serverURL string) string {
	serverURL = strings.TrimSpace(serverURL)
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "http://" + serverURL
	}
	return strings.TrimSuffix(serverURL, "/")
}

// checkServer checks that something answers HTTP at serverURL
func checkServer(ctx context.Context, serverURL string) tea.Cmd {
	return func() tea.Msg {
		client := api.NewClient(serverURL, api.WithTimeout(checkTimeout), api.WithUserAgent(UserAgent()))

		status, err := client.Ping(ctx)
		if err != nil {
			return checkMsg{result: fmt.Sprintf("Connection failed: %v", err)}
		}
		return checkMsg{success: true, result: fmt.Sprintf("Connected to %s (HTTP %d)", serverURL, status)}
	}
}

// setupAction launches the setup wizard and saves the chosen server
func setupAction(c *cli.Context) error {
	if !stdinIsTerminal() {
		return NewUsageError("setup needs an interactive terminal; use 'config set server.primary <url>' instead")
	}

	config, path, err := loadConfig(c)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newSetupModel(c.Context, config.Server.Primary),
		tea.WithContext(c.Context),
		tea.WithOutput(c.App.ErrWriter),
	)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("setup wizard error: %w", err)
	}

	model := finalModel.(setupModel)
	if model.cancelled {
		return NewUsageError("setup cancelled")
	}
	if !model.done {
		return nil
	}

	serverURL := normalizeServerURL(model.serverURL)
	fmt.Fprintf(c.App.Writer, "Server: %s\n", serverURL)

	if !model.saveToConfig {
		return nil
	}

	if err := SetConfigValue(path, "server.primary", serverURL); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Configuration saved to %s\n", path)
	return nil
}
