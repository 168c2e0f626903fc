package renderer

import (
	"fmt"
	"strings"

	"github.com/apimgr/weather-cli/src/models"
)

// conditionIcons maps a condition group to a status-bar icon
var conditionIcons = map[string]string{
	"clear":        "☀️",
	"clouds":       "☁️",
	"rain":         "🌧",
	"drizzle":      "🌦",
	"thunderstorm": "⛈",
	"snow":         "❄️",
	"mist":         "🌫",
	"fog":          "🌫",
}

// conditionIcon returns the icon for the first condition, or "" when unknown
func conditionIcon(conds []models.Condition) string {
	if len(conds) == 0 {
		return ""
	}
	return conditionIcons[strings.ToLower(conds[0].Main)]
}

// oneLineWeather renders "Paris: ☀️ 18.5°C clear sky 60% 3.2m/s"
func (f *Formatter) oneLineWeather(w *models.CurrentWeather) string {
	parts := []string{f.paint(f.st.heading, w.Name+":")}
	if icon := conditionIcon(w.Weather); icon != "" {
		parts = append(parts, icon)
	}
	parts = append(parts,
		f.paint(f.st.temp, formatNumber(w.Main.Temp)+"°C"),
		f.paint(f.st.desc, w.Description()),
		f.paint(f.st.humid, formatNumber(w.Main.Humidity)+"%"),
		f.paint(f.st.wind, formatNumber(w.Wind.Speed)+"m/s"),
	)
	return strings.Join(parts, " ") + "\n"
}

// oneLineForecast renders one line per forecast point
func (f *Formatter) oneLineForecast(fc *models.Forecast) string {
	var sb strings.Builder
	for _, entry := range fc.List {
		fmt.Fprintf(&sb, "%s %s: %s %s\n",
			f.paint(f.st.heading, fc.City.Name),
			entry.DtTxt,
			f.paint(f.st.temp, formatNumber(entry.Main.Temp)+"°C"),
			f.paint(f.st.desc, entry.Description()))
	}
	return sb.String()
}

// oneLineHistory renders "#1 2024-05-01 10:00:00 Paris: 18.5°C clear sky"
func (f *Formatter) oneLineHistory(entries []models.HistoryEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		prefix := fmt.Sprintf("#%s %s ", entry.SearchID.String(), entry.SearchTime)

		p := &entry.WeatherData
		switch err := payloadError(p); {
		case err != nil:
			sb.WriteString(prefix + entry.Location + ": " + f.paint(f.st.errText, err.Error()) + "\n")
		case p.Kind == models.PayloadCurrent:
			sb.WriteString(prefix + f.oneLineWeather(p.Current))
		default:
			fmt.Fprintf(&sb, "%s%s: forecast, %d entries\n", prefix, entry.Location, len(p.Forecast.List))
		}
	}
	return sb.String()
}
