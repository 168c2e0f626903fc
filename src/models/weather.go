package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Readings holds the "main" block of a weather response
type Readings struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// Condition is one entry of the "weather" array
type Condition struct {
	Main        string `json:"main,omitempty"`
	Description string `json:"description"`
}

// Wind holds wind readings
type Wind struct {
	Speed float64 `json:"speed"`
}

// CurrentWeather is a current-conditions snapshot for one location
type CurrentWeather struct {
	Name    string      `json:"name"`
	Main    Readings    `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    Wind        `json:"wind"`
}

// Description returns the first condition description, or "" when absent
func (w *CurrentWeather) Description() string {
	return firstDescription(w.Weather)
}

// City identifies the location of a forecast
type City struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// ForecastEntry is a single dated point of a forecast
type ForecastEntry struct {
	Dt      int64       `json:"dt,omitempty"`
	DtTxt   string      `json:"dt_txt"`
	Main    Readings    `json:"main"`
	Weather []Condition `json:"weather"`
}

// Description returns the first condition description, or "" when absent
func (e *ForecastEntry) Description() string {
	return firstDescription(e.Weather)
}

// Forecast is a multi-day sequence of predictions for one location
type Forecast struct {
	City City            `json:"city"`
	List []ForecastEntry `json:"list"`
}

// WeatherQuery is the body of a weather request
type WeatherQuery struct {
	Location string `json:"location"`
	Forecast bool   `json:"forecast"`
}

func firstDescription(conds []Condition) string {
	if len(conds) == 0 {
		return ""
	}
	return conds[0].Description
}

// PayloadKind tells which shape a WeatherPayload holds
type PayloadKind int

const (
	// PayloadEmpty means no weather data was present
	PayloadEmpty PayloadKind = iota
	// PayloadCurrent holds a CurrentWeather
	PayloadCurrent
	// PayloadForecast holds a Forecast
	PayloadForecast
)

// ErrUnknownPayload is returned for weather data that is neither a snapshot nor a forecast
var ErrUnknownPayload = errors.New("unrecognized weather payload")

// ErrMissingField is returned for a payload lacking a field the layouts print
var ErrMissingField = errors.New("missing field")

var (
	currentFields       = []string{"name", "main.temp", "weather.0.description", "main.humidity", "wind.speed"}
	forecastFields      = []string{"city.name", "list"}
	forecastEntryFields = []string{"dt_txt", "main.temp", "weather.0.description"}
)

// WeatherPayload is the weather data embedded in a history entry.
//
// The service stores the payload either as a JSON object or as a JSON string
// holding the serialized object. Both shapes are resolved here, once, when the
// entry is decoded. A string that does not decode leaves Err set instead of
// failing the surrounding document.
type WeatherPayload struct {
	Kind     PayloadKind
	Current  *CurrentWeather
	Forecast *Forecast
	// Encoded is the original string when the payload arrived serialized
	Encoded string
	// Err is the decode failure of an encoded or malformed payload
	Err error
}

// IsEncoded reports whether the payload arrived as a serialized string
func (p *WeatherPayload) IsEncoded() bool {
	return p.Encoded != ""
}

// UnmarshalJSON implements json.Unmarshaler
func (p *WeatherPayload) UnmarshalJSON(data []byte) error {
	*p = WeatherPayload{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return err
		}
		p.Encoded = encoded
		if err := p.resolve([]byte(encoded)); err != nil {
			p.Err = err
		}
		return nil
	}

	if err := p.resolve(trimmed); err != nil {
		p.Err = err
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (p WeatherPayload) MarshalJSON() ([]byte, error) {
	switch {
	case p.Kind == PayloadCurrent:
		return json.Marshal(p.Current)
	case p.Kind == PayloadForecast:
		return json.Marshal(p.Forecast)
	case p.Encoded != "":
		return json.Marshal(p.Encoded)
	default:
		return []byte("null"), nil
	}
}

// resolve decodes a JSON object into the matching payload shape
func (p *WeatherPayload) resolve(raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode weather data: %w", err)
	}

	if _, ok := doc["list"]; ok {
		if err := requireFields(doc, forecastFields); err != nil {
			return err
		}
		entries, ok := doc["list"].([]any)
		if !ok {
			return fmt.Errorf("%w: list", ErrMissingField)
		}
		for i, entry := range entries {
			if err := requireFields(entry, forecastEntryFields); err != nil {
				return fmt.Errorf("list.%d: %w", i, err)
			}
		}

		var f Forecast
		if err := json.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("decode forecast: %w", err)
		}
		p.Kind = PayloadForecast
		p.Forecast = &f
		return nil
	}

	if _, ok := doc["main"]; ok {
		if err := requireFields(doc, currentFields); err != nil {
			return err
		}

		var c CurrentWeather
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("decode current weather: %w", err)
		}
		p.Kind = PayloadCurrent
		p.Current = &c
		return nil
	}

	return ErrUnknownPayload
}

// requireFields checks that every dotted path resolves to a non-null value.
// Numeric segments index arrays.
func requireFields(doc any, paths []string) error {
	for _, path := range paths {
		if !hasPath(doc, strings.Split(path, ".")) {
			return fmt.Errorf("%w: %s", ErrMissingField, path)
		}
	}
	return nil
}

func hasPath(node any, segments []string) bool {
	for _, seg := range segments {
		switch v := node.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return false
			}
			node = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				return false
			}
			node = v[i]
		default:
			return false
		}
	}
	return node != nil
}
