// Package dispatcher runs one user command per call: it checks the session,
// sends the single request the command needs and routes the response to the
// renderer.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/models"
	"github.com/apimgr/weather-cli/src/renderer"
	"github.com/apimgr/weather-cli/src/session"
)

// Service is the remote weather/account service
type Service interface {
	Register(ctx context.Context, creds models.Credentials) error
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	Weather(ctx context.Context, token string, q models.WeatherQuery) (*models.WeatherPayload, error)
	History(ctx context.Context, token string) ([]models.HistoryEntry, error)
	DeleteHistory(ctx context.Context, token, searchID string) error
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error
}

// Dispatcher executes user commands against the service
type Dispatcher struct {
	service   Service
	session   *session.Manager
	formatter *renderer.Formatter
	out       io.Writer
	logger    *slog.Logger
}

// New creates a dispatcher writing command output to out
func New(service Service, sess *session.Manager, formatter *renderer.Formatter, out io.Writer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		service:   service,
		session:   sess,
		formatter: formatter,
		out:       out,
		logger:    logger,
	}
}

// Register creates a new account
func (d *Dispatcher) Register(ctx context.Context, username, password string) error {
	err := d.service.Register(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return fail("Registration", err)
	}
	fmt.Fprintln(d.out, "User registered successfully!")
	return nil
}

// Login authenticates and persists the returned token
func (d *Dispatcher) Login(ctx context.Context, username, password string) error {
	token, err := d.service.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, api.ErrTokenMissing) {
			d.logger.Warn("login response without token", "error", err)
			return ErrTokenNotRetrieved
		}
		return fail("Login", err)
	}

	if err := d.session.Begin(token); err != nil {
		return fail("Login", err)
	}

	fmt.Fprintln(d.out, "Login successful!")
	fmt.Fprintf(d.out, "JWT Token: %s\n", token)
	return nil
}

// Logout ends the session. The local session is only cleared when the
// service accepts the logout.
func (d *Dispatcher) Logout(ctx context.Context) error {
	token, err := d.requireToken()
	if err != nil {
		return err
	}

	if err := d.service.Logout(ctx, token); err != nil {
		return fail("Logout", err)
	}

	if err := d.session.End(); err != nil {
		return fail("Logout", err)
	}

	fmt.Fprintln(d.out, "Logged out successfully!")
	return nil
}

// Weather fetches and renders current conditions or a 5-day forecast
func (d *Dispatcher) Weather(ctx context.Context, location string, forecast bool) error {
	token, err := d.requireToken()
	if err != nil {
		return err
	}

	payload, err := d.service.Weather(ctx, token, models.WeatherQuery{Location: location, Forecast: forecast})
	if err != nil {
		return fail("Weather request", err)
	}

	fmt.Fprint(d.out, d.formatter.FormatWeather(payload))
	return nil
}

// History renders the caller's search history
func (d *Dispatcher) History(ctx context.Context) error {
	token, err := d.requireToken()
	if err != nil {
		return err
	}

	entries, err := d.service.History(ctx, token)
	if err != nil {
		return fail("History request", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(d.out, "No search history found.")
		return nil
	}

	for _, e := range entries {
		if e.WeatherData.Err != nil {
			d.logger.Debug("undecodable history payload", "search_id", e.SearchID.String(), "error", e.WeatherData.Err)
		}
	}

	if d.formatter.Format == renderer.FormatPlain {
		fmt.Fprintln(d.out, "Search History:")
	}
	fmt.Fprint(d.out, d.formatter.FormatHistory(entries))
	return nil
}

// DeleteHistory removes one history entry
func (d *Dispatcher) DeleteHistory(ctx context.Context, searchID string) error {
	token, err := d.requireToken()
	if err != nil {
		return err
	}

	if err := d.service.DeleteHistory(ctx, token, searchID); err != nil {
		return fail("Delete request", err)
	}

	fmt.Fprintf(d.out, "Deleted search entry %s\n", searchID)
	return nil
}

// UpdateProfile changes the username and/or password. At least one must be
// non-empty; otherwise nothing is sent.
func (d *Dispatcher) UpdateProfile(ctx context.Context, newUsername, newPassword string) error {
	token, err := d.requireToken()
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{NewUsername: newUsername, NewPassword: newPassword}
	if update.IsEmpty() {
		return ErrNoProfileFields
	}

	if err := d.service.UpdateProfile(ctx, token, update); err != nil {
		return fail("Profile update", err)
	}

	fmt.Fprintln(d.out, "Profile updated successfully")
	return nil
}

// Status prints the session state without contacting the service
func (d *Dispatcher) Status(now time.Time) error {
	fmt.Fprintf(d.out, "Session: %s\n", d.session.State())
	if !d.session.Authenticated() {
		return nil
	}

	claims := session.Inspect(d.session.Token())
	if claims.Opaque {
		fmt.Fprintln(d.out, "Token: opaque")
		return nil
	}

	if claims.Username != "" {
		fmt.Fprintf(d.out, "Username: %s\n", claims.Username)
	} else if claims.Subject != "" {
		fmt.Fprintf(d.out, "Subject: %s\n", claims.Subject)
	}
	if !claims.IssuedAt.IsZero() {
		fmt.Fprintf(d.out, "Issued at: %s\n", claims.IssuedAt.Local().Format(time.RFC1123))
	}
	if !claims.ExpiresAt.IsZero() {
		suffix := ""
		if claims.Expired(now) {
			suffix = " (expired)"
		}
		fmt.Fprintf(d.out, "Expires at: %s%s\n", claims.ExpiresAt.Local().Format(time.RFC1123), suffix)
	}
	return nil
}

// requireToken returns the session token or ErrNotLoggedIn. It runs before
// any request so an unauthenticated command never reaches the service.
func (d *Dispatcher) requireToken() (string, error) {
	if !d.session.Authenticated() {
		return "", ErrNotLoggedIn
	}
	return d.session.Token(), nil
}
