package middleware

import (
	"github.com/deppfellow/gs-backend/internal/logger"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserKey holds the authenticated *model.User in the echo context.
	UserKey = "user"

	// LoggerKey holds the request-scoped *zerolog.Logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores a logger carrying the request id, route, client ip
// and New Relic trace ids. Authenticate later adds the user to it.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if user := GetUser(c); user != nil {
				contextLogger = withUser(contextLogger, user)
			}

			c.Set(LoggerKey, &contextLogger)
			return next(c)
		}
	}
}

func withUser(l zerolog.Logger, user *model.User) zerolog.Logger {
	return l.With().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Logger()
}

// setUser records the caller and adds it to the request logger.
func setUser(c echo.Context, user *model.User) {
	c.Set(UserKey, user)

	contextLogger := withUser(*GetLogger(c), user)
	c.Set(LoggerKey, &contextLogger)
}

// GetUser returns the authenticated caller, nil for anonymous requests.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

// GetUserID returns the caller's id, 0 for anonymous requests.
func GetUserID(c echo.Context) int64 {
	return GetUser(c).UserID()
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}
