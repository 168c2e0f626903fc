package fakeapi

import (
	"context"
	"errors"
	"strings"

	"github.com/apimgr/weather-cli/src/models"
)

// ErrUnknownLocation is returned by a Provider for locations it cannot serve
var ErrUnknownLocation = errors.New("unknown location")

// Provider supplies the weather documents the fake service returns and
// records in history
type Provider interface {
	Current(ctx context.Context, location string) (*models.CurrentWeather, error)
	Forecast(ctx context.Context, location string) (*models.Forecast, error)
}

// StaticProvider serves canned documents keyed by lower-cased location
type StaticProvider struct {
	CurrentByLocation  map[string]models.CurrentWeather
	ForecastByLocation map[string]models.Forecast
}

// Current returns the canned current weather for location
func (p *StaticProvider) Current(_ context.Context, location string) (*models.CurrentWeather, error) {
	w, ok := p.CurrentByLocation[strings.ToLower(location)]
	if !ok {
		return nil, ErrUnknownLocation
	}
	return &w, nil
}

// Forecast returns the canned forecast for location
func (p *StaticProvider) Forecast(_ context.Context, location string) (*models.Forecast, error) {
	f, ok := p.ForecastByLocation[strings.ToLower(location)]
	if !ok {
		return nil, ErrUnknownLocation
	}
	return &f, nil
}

// SampleProvider knows Paris, London and Oslo
func SampleProvider() *StaticProvider {
	return &StaticProvider{
		CurrentByLocation: map[string]models.CurrentWeather{
			"paris":  current("Paris", 18.5, 60, "clear sky", 3.2),
			"london": current("London", 12, 82, "light rain", 5.1),
			"oslo":   current("Oslo", 4, 80, "snow", 7),
		},
		ForecastByLocation: map[string]models.Forecast{
			"paris": {
				City: models.City{Name: "Paris", Country: "FR"},
				List: []models.ForecastEntry{
					forecastEntry("2024-05-01 12:00:00", 21, "few clouds"),
					forecastEntry("2024-05-01 15:00:00", 22.4, "light rain"),
					forecastEntry("2024-05-01 18:00:00", 19.8, "overcast clouds"),
				},
			},
			"london": {
				City: models.City{Name: "London", Country: "GB"},
				List: []models.ForecastEntry{
					forecastEntry("2024-05-01 12:00:00", 13, "moderate rain"),
					forecastEntry("2024-05-01 15:00:00", 14.2, "broken clouds"),
				},
			},
		},
	}
}

func current(name string, temp, humidity float64, desc string, wind float64) models.CurrentWeather {
	return models.CurrentWeather{
		Name:    name,
		Main:    models.Readings{Temp: temp, Humidity: humidity},
		Weather: []models.Condition{{Description: desc}},
		Wind:    models.Wind{Speed: wind},
	}
}

func forecastEntry(dtTxt string, temp float64, desc string) models.ForecastEntry {
	return models.ForecastEntry{
		DtTxt:   dtTxt,
		Main:    models.Readings{Temp: temp},
		Weather: []models.Condition{{Description: desc}},
	}
}
