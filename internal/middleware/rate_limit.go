package middleware

import (
	"math"
	"net/http"
	"time"

	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const rateLimitExpiry = 3 * time.Minute

// RateLimitMiddleware throttles clients by IP and reports rejections to
// Prometheus and New Relic.
type RateLimitMiddleware struct {
	server  *server.Server
	metrics *MetricsMiddleware
}

func NewRateLimitMiddleware(s *server.Server, metrics *MetricsMiddleware) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		metrics: metrics,
	}
}

// Limit allows server.rate_limit requests per second per client IP, with
// bursts of twice that. System routes are not limited.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	perSecond := r.server.Config.Server.RateLimit

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/status", "/metrics":
				return true
			}
			return false
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     int(math.Ceil(perSecond * 2)),
			ExpiresIn: rateLimitExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(routeLabel(c))
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return echo.NewHTTPError(http.StatusTooManyRequests, "Request was throttled.")
		},
	})
}

// RecordRateLimitHit counts a rejected request for endpoint.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.metrics != nil {
		r.metrics.recordRateLimited(endpoint)
	}

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
