package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apimgr/weather-cli/src/models"
)

// Register creates an account. Only 201 Created counts as success.
func (c *Client) Register(ctx context.Context, creds models.Credentials) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   c.endpoints.Register,
		body:   creds,
		accept: isCreated,
	})
	return err
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   c.endpoints.Login,
		body:   creds,
	})
	if err != nil {
		return "", err
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenMissing, err)
	}
	if resp.JWTToken == "" {
		return "", ErrTokenMissing
	}
	return resp.JWTToken, nil
}

// Logout ends the session on the service side
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   c.endpoints.Logout,
		token:  token,
	})
	return err
}

// Weather fetches current conditions or, with q.Forecast set, a 5-day
// forecast. The result holds the shape matching the flag.
func (c *Client) Weather(ctx context.Context, token string, q models.WeatherQuery) (*models.WeatherPayload, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   c.endpoints.Weather,
		token:  token,
		body:   q,
	})
	if err != nil {
		return nil, err
	}

	if q.Forecast {
		var f models.Forecast
		if err := json.Unmarshal(body, &f); err != nil {
			return nil, fmt.Errorf("decode forecast: %w", err)
		}
		return &models.WeatherPayload{Kind: models.PayloadForecast, Forecast: &f}, nil
	}

	var w models.CurrentWeather
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode weather: %w", err)
	}
	return &models.WeatherPayload{Kind: models.PayloadCurrent, Current: &w}, nil
}

// History lists the caller's past searches
func (c *Client) History(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	body, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   c.endpoints.History,
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	var entries []models.HistoryEntry
	if len(bytes.TrimSpace(body)) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// DeleteHistory removes one history entry by id
func (c *Client) DeleteHistory(ctx context.Context, token, searchID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   c.endpoints.History + "/" + url.PathEscape(searchID),
		token:  token,
	})
	return err
}

// UpdateProfile sends a partial profile update
func (c *Client) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   c.endpoints.UpdateProfile,
		token:  token,
		body:   update,
	})
	return err
}

// Ping checks that the service answers at all. Any HTTP response counts;
// only transport failures are errors.
func (c *Client) Ping(ctx context.Context) (int, error) {
	status := 0
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/",
		accept: func(code int) bool {
			status = code
			return true
		},
	})
	return status, err
}
