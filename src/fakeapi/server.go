// Package fakeapi is an in-memory stand-in for the remote weather/account
// service. It speaks the same wire format (plain-text errors, JWT bearer
// auth, history payloads stored as JSON strings) and backs the end-to-end
// tests and local development.
package fakeapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAddr is the listen address of the service the CLI was written for
const DefaultAddr = ":3005"

// Config configures a Server
type Config struct {
	// Secret signs session tokens; a random secret is used when empty
	Secret []byte
	// Provider supplies weather documents; SampleProvider when nil
	Provider Provider
	// Logger receives access logs; discarded when nil
	Logger *slog.Logger
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
	// AuthRateLimit caps login and register requests per minute for each
	// client IP; zero disables the limit
	AuthRateLimit int
}

// Server is the fake service
type Server struct {
	engine   *gin.Engine
	store    *store
	provider Provider
	secret   []byte
	cost     int
	logger   *slog.Logger
	authRate int
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type weatherRequest struct {
	Location string `json:"location"`
	Forecast bool   `json:"forecast"`
}

type profileRequest struct {
	NewUsername string `json:"newUsername"`
	NewPassword string `json:"newPassword"`
}

// historyRow is one row of GET /history, with the weather document kept as
// the JSON string it was stored as
type historyRow struct {
	SearchID    int64  `json:"search_id"`
	UserID      int64  `json:"user_id"`
	Location    string `json:"location"`
	WeatherData string `json:"weather_data"`
	SearchTime  string `json:"search_time"`
	Username    string `json:"username"`
}

// New creates a fake service
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Provider == nil {
		cfg.Provider = SampleProvider()
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(uuid.NewString())
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	s := &Server{
		engine:   gin.New(),
		store:    newStore(),
		provider: cfg.Provider,
		secret:   cfg.Secret,
		cost:     cfg.BcryptCost,
		logger:   cfg.Logger,
		authRate: cfg.AuthRateLimit,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.Use(gin.Recovery(), requestID(), accessLog(s.logger))

	public := s.engine.Group("/")
	if s.authRate > 0 {
		public.Use(rateLimit(s.authRate, time.Minute))
	}
	public.POST("/register", s.handleRegister)
	public.POST("/login", s.handleLogin)

	auth := s.engine.Group("/", authenticate(s.secret))
	auth.POST("/logout", s.handleLogout)
	auth.PUT("/update-profile", s.handleUpdateProfile)
	auth.POST("/weather", s.handleWeather)
	auth.GET("/history", s.handleHistory)
	auth.DELETE("/history/:searchId", s.handleDeleteHistory)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	if err := s.store.addUser(req.Username, hash); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	c.String(http.StatusCreated, "User registered successfully")
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	u, err := s.store.user(req.Username)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		c.String(http.StatusBadRequest, "Invalid password")
		return
	}

	token, err := s.issueToken(u.username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jwtToken": token})
}

func (s *Server) handleLogout(c *gin.Context) {
	c.String(http.StatusOK, "Logged out successfully")
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	if req.NewUsername == "" && req.NewPassword == "" {
		c.String(http.StatusBadRequest, "No update fields provided")
		return
	}

	var hash []byte
	if req.NewPassword != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
		if err != nil {
			c.String(http.StatusInternalServerError, "Server error")
			return
		}
	}

	if err := s.store.updateUser(c.GetString(usernameKey), req.NewUsername, hash); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	c.String(http.StatusOK, "Profile updated successfully")
}

func (s *Server) handleWeather(c *gin.Context) {
	var req weatherRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		c.String(http.StatusBadRequest, "Invalid location")
		return
	}

	var (
		doc any
		err error
	)
	if req.Forecast {
		doc, err = s.provider.Forecast(c.Request.Context(), req.Location)
	} else {
		doc, err = s.provider.Current(c.Request.Context(), req.Location)
	}
	if errors.Is(err, ErrUnknownLocation) {
		c.String(http.StatusBadRequest, "Invalid location")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error fetching weather data")
		return
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error fetching weather data")
		return
	}

	if u, err := s.store.user(c.GetString(usernameKey)); err == nil {
		s.store.addSearch(u.id, req.Location, string(encoded))
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", encoded)
}

func (s *Server) handleHistory(c *gin.Context) {
	u, err := s.store.user(c.GetString(usernameKey))
	if err != nil {
		c.JSON(http.StatusOK, []historyRow{})
		return
	}

	rows := []historyRow{}
	for _, e := range s.store.searches(u.id) {
		rows = append(rows, historyRow{
			SearchID:    e.id,
			UserID:      e.userID,
			Location:    e.location,
			WeatherData: e.weatherData,
			SearchTime:  e.searchTime.Format(searchTimeLayout),
			Username:    u.username,
		})
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleDeleteHistory(c *gin.Context) {
	searchID := c.Param("searchId")

	id, err := strconv.ParseInt(searchID, 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, errEntryNotFound.Error())
		return
	}

	u, err := s.store.user(c.GetString(usernameKey))
	if err != nil {
		c.String(http.StatusNotFound, errEntryNotFound.Error())
		return
	}

	if err := s.store.deleteSearch(u.id, id); err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	c.String(http.StatusOK, "Deleted search entry "+searchID)
}

func (s *Server) issueToken(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"iat":      time.Now().Unix(),
	})
	return token.SignedString(s.secret)
}

// SeedSearch records a raw history entry for username, bypassing the
// provider. weatherData is stored verbatim, so callers can seed documents
// the client cannot decode.
func (s *Server) SeedSearch(username, location, weatherData string) (int64, error) {
	u, err := s.store.user(username)
	if err != nil {
		return 0, err
	}
	return s.store.addSearch(u.id, location, weatherData), nil
}
