package fakeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/apimgr/weather-cli/src/models"
)

// OpenWeatherMapURL is the upstream the real service queries
const OpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMap serves live documents from the OpenWeatherMap API in
// metric units. Responses are cached per endpoint and location.
type OpenWeatherMap struct {
	client  *http.Client
	cache   *cache.Cache
	apiKey  string
	baseURL string
}

// NewOpenWeatherMap creates a provider for apiKey. An empty baseURL selects
// OpenWeatherMapURL.
func NewOpenWeatherMap(apiKey, baseURL string) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = OpenWeatherMapURL
	}

	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &OpenWeatherMap{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Current returns current conditions for location
func (p *OpenWeatherMap) Current(ctx context.Context, location string) (*models.CurrentWeather, error) {
	var w models.CurrentWeather
	if err := p.fetch(ctx, "weather", location, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Forecast returns the 5-day forecast for location
func (p *OpenWeatherMap) Forecast(ctx context.Context, location string) (*models.Forecast, error) {
	var f models.Forecast
	if err := p.fetch(ctx, "forecast", location, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// fetch decodes endpoint's document for location into v. Any non-200
// answer is treated as an unknown location.
func (p *OpenWeatherMap) fetch(ctx context.Context, endpoint, location string, v any) error {
	cacheKey := endpoint + ":" + strings.ToLower(location)
	if cached, found := p.cache.Get(cacheKey); found {
		return json.Unmarshal(cached.([]byte), v)
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch weather data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrUnknownLocation
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse weather data: %w", err)
	}

	p.cache.Set(cacheKey, body, cache.DefaultExpiration)
	return nil
}
