package fakeapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	usernameKey     = "username"
	headerRequestID = "X-Request-ID"
	invalidToken    = "Invalid JWT Token"
	tooManyRequests = "Too many requests"
)

// requestID echoes the caller's X-Request-ID or generates one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// rateLimit allows limit requests per window for each client IP
func rateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := httprate.NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		key, err := httprate.KeyByIP(c.Request)
		if err != nil {
			key = c.ClientIP()
		}
		if limiter.OnLimit(c.Writer, c.Request, key) {
			c.String(http.StatusTooManyRequests, tooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// accessLog logs one line per request
func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"user", c.GetString(usernameKey),
		)
	}
}

// authenticate requires a valid HS256 bearer token and stores its username
// claim in the context
func authenticate(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			unauthorized(c)
			return
		}

		claims := jwt.MapClaims{}
		_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil {
			unauthorized(c)
			return
		}

		username, _ := claims["username"].(string)
		if username == "" {
			unauthorized(c)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.String(http.StatusUnauthorized, invalidToken)
	c.Abort()
}
