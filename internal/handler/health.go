package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/gs-backend/internal/middleware"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultHealthTimeout = 5 * time.Second

// healthCheck probes one dependency. A failing required check turns the
// whole status unhealthy; optional ones are only reported.
type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler checks the database (required) and Redis (reported
// only), each when enabled in observability.health_checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: defaultHealthTimeout,
	}

	obs := s.Config.Observability
	if obs == nil {
		return h
	}
	if obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}

	if obs.HealthCheckEnabled("database") && s.DB != nil {
		h.checks = append(h.checks, healthCheck{
			name:     "database",
			required: true,
			ping:     s.DB.Pool.Ping,
		})
	}
	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		h.checks = append(h.checks, healthCheck{
			name: "redis",
			ping: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			},
		})
	}

	return h
}

// CheckHealth answers 200 when every required dependency responds and
// 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		result := map[string]any{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}

		if err != nil {
			result["status"] = "unhealthy"
			result["error"] = err.Error()
			if check.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordFailure(check.name, err, time.Since(checkStart))
		}

		checks[check.name] = result
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	status := http.StatusOK
	if !isHealthy {
		response["status"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	logger.Debug().
		Bool("healthy", isHealthy).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	if err := c.JSON(status, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
