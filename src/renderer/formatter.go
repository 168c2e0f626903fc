// Package renderer turns service responses into terminal text. It has no
// side effects; callers decide where the output goes.
package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/apimgr/weather-cli/src/models"
)

// Output formats
const (
	FormatPlain   = "plain"
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatOneLine = "oneline"
)

// dividerWidth is the width of the line between forecast and history entries
const dividerWidth = 40

var errNoPayload = errors.New("no weather data")

// ValidFormat reports whether format is a known output format
func ValidFormat(format string) bool {
	switch format {
	case FormatPlain, FormatTable, FormatJSON, FormatOneLine:
		return true
	}
	return false
}

// Formatter handles output formatting
type Formatter struct {
	Format  string
	NoColor bool
	st      styles
}

// NewFormatter creates a new formatter. Unknown formats fall back to plain.
func NewFormatter(format string, noColor bool) *Formatter {
	if !ValidFormat(format) {
		format = FormatPlain
	}
	return &Formatter{
		Format:  format,
		NoColor: noColor,
		st:      newStyles(),
	}
}

// FormatWeather formats whichever shape p holds
func (f *Formatter) FormatWeather(p *models.WeatherPayload) string {
	switch p.Kind {
	case models.PayloadCurrent:
		return f.FormatWeatherCurrent(p.Current)
	case models.PayloadForecast:
		return f.FormatForecast(p.Forecast)
	default:
		return f.errorLine(errNoPayload)
	}
}

// FormatWeatherCurrent formats current weather data
func (f *Formatter) FormatWeatherCurrent(w *models.CurrentWeather) string {
	switch f.Format {
	case FormatJSON:
		return f.FormatJSON(w)
	case FormatTable:
		return f.formatTableWeather(w)
	case FormatOneLine:
		return f.oneLineWeather(w)
	default:
		return f.formatPlainWeather(w)
	}
}

// FormatForecast formats forecast data
func (f *Formatter) FormatForecast(fc *models.Forecast) string {
	switch f.Format {
	case FormatJSON:
		return f.FormatJSON(fc)
	case FormatTable:
		return f.formatTableForecast(fc)
	case FormatOneLine:
		return f.oneLineForecast(fc)
	default:
		return f.formatPlainForecast(fc)
	}
}

// FormatHistory formats history entries. An entry whose weather data could
// not be decoded gets an inline error; the remaining entries still render.
func (f *Formatter) FormatHistory(entries []models.HistoryEntry) string {
	switch f.Format {
	case FormatJSON:
		return f.FormatJSON(entries)
	case FormatTable:
		return f.formatTableHistory(entries)
	case FormatOneLine:
		return f.oneLineHistory(entries)
	default:
		return f.formatPlainHistory(entries)
	}
}

// FormatJSON formats data as indented JSON
func (f *Formatter) FormatJSON(data any) string {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error formatting JSON: %v\n", err)
	}
	return string(jsonData) + "\n"
}

// formatPlainWeather formats weather as plain text
func (f *Formatter) formatPlainWeather(w *models.CurrentWeather) string {
	var sb strings.Builder

	sb.WriteString(f.paint(f.st.heading, fmt.Sprintf("Current Weather for %s:", w.Name)) + "\n")
	f.field(&sb, "Temperature", f.paint(f.st.temp, formatNumber(w.Main.Temp)+"°C"))
	f.field(&sb, "Weather", f.paint(f.st.desc, w.Description()))
	f.field(&sb, "Humidity", f.paint(f.st.humid, formatNumber(w.Main.Humidity)+"%"))
	f.field(&sb, "Wind Speed", f.paint(f.st.wind, formatNumber(w.Wind.Speed)+" m/s"))

	return sb.String()
}

// formatPlainForecast formats forecast as plain text
func (f *Formatter) formatPlainForecast(fc *models.Forecast) string {
	var sb strings.Builder

	sb.WriteString(f.paint(f.st.heading, fmt.Sprintf("5-day Forecast for %s:", fc.City.Name)) + "\n")
	for _, entry := range fc.List {
		f.field(&sb, "Date", entry.DtTxt)
		f.field(&sb, "Temperature", f.paint(f.st.temp, formatNumber(entry.Main.Temp)+"°C"))
		f.field(&sb, "Weather", f.paint(f.st.desc, entry.Description()))
		sb.WriteString(f.divider() + "\n")
	}

	return sb.String()
}

// formatPlainHistory formats history as plain text
func (f *Formatter) formatPlainHistory(entries []models.HistoryEntry) string {
	var sb strings.Builder

	for _, entry := range entries {
		f.field(&sb, "ID", entry.SearchID.String())
		f.field(&sb, "Location", entry.Location)
		f.field(&sb, "Date", entry.SearchTime)
		sb.WriteString(f.paint(f.st.label, "Weather Data:") + "\n")

		p := &entry.WeatherData
		if err := payloadError(p); err != nil {
			sb.WriteString(f.errorLine(err))
		} else {
			sb.WriteString(f.FormatWeather(p))
		}

		// a non-empty forecast already closes with a divider
		if p.Err != nil || p.Kind != models.PayloadForecast || len(p.Forecast.List) == 0 {
			sb.WriteString(f.divider() + "\n")
		}
	}

	return sb.String()
}

// formatTableWeather formats weather as a table
func (f *Formatter) formatTableWeather(w *models.CurrentWeather) string {
	t := f.newTable("Current Weather", w.Name).
		Row("Temperature", formatNumber(w.Main.Temp)+"°C").
		Row("Weather", w.Description()).
		Row("Humidity", formatNumber(w.Main.Humidity)+"%").
		Row("Wind Speed", formatNumber(w.Wind.Speed)+" m/s")

	return t.String() + "\n"
}

// formatTableForecast formats forecast as a table
func (f *Formatter) formatTableForecast(fc *models.Forecast) string {
	var sb strings.Builder

	sb.WriteString(f.paint(f.st.heading, fmt.Sprintf("5-day Forecast for %s:", fc.City.Name)) + "\n")

	t := f.newTable("Date", "Temperature", "Weather")
	for _, entry := range fc.List {
		t.Row(entry.DtTxt, formatNumber(entry.Main.Temp)+"°C", entry.Description())
	}
	sb.WriteString(t.String() + "\n")

	return sb.String()
}

// formatTableHistory formats history as a table, one row per entry
func (f *Formatter) formatTableHistory(entries []models.HistoryEntry) string {
	t := f.newTable("ID", "Location", "Date", "Temperature", "Weather")

	for _, entry := range entries {
		p := &entry.WeatherData
		temp, desc := "", ""
		if err := payloadError(p); err != nil {
			desc = "Error displaying weather data: " + err.Error()
		} else if p.Kind == models.PayloadCurrent {
			temp = formatNumber(p.Current.Main.Temp) + "°C"
			desc = p.Current.Description()
		} else {
			desc = fmt.Sprintf("forecast (%d entries)", len(p.Forecast.List))
		}
		t.Row(entry.SearchID.String(), entry.Location, entry.SearchTime, temp, desc)
	}

	return t.String() + "\n"
}

func (f *Formatter) newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)

	if f.NoColor {
		return t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	return t.
		BorderStyle(f.st.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// field writes "Label: value"
func (f *Formatter) field(sb *strings.Builder, label, value string) {
	sb.WriteString(f.paint(f.st.label, label+":") + " " + value + "\n")
}

func (f *Formatter) divider() string {
	return f.paint(f.st.divider, strings.Repeat("-", dividerWidth))
}

func (f *Formatter) errorLine(err error) string {
	return f.paint(f.st.errText, "Error displaying weather data: "+err.Error()) + "\n"
}

// paint applies style unless colour is disabled
func (f *Formatter) paint(style lipgloss.Style, s string) string {
	if f.NoColor {
		return s
	}
	return style.Render(s)
}

// payloadError returns why a history payload cannot be shown, or nil
func payloadError(p *models.WeatherPayload) error {
	if p.Err != nil {
		return p.Err
	}
	if p.Kind == models.PayloadEmpty {
		return errNoPayload
	}
	return nil
}

// formatNumber prints a number in its shortest form: 18.5, 60, 3.2
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
