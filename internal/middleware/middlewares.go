package middleware

import (
	"github.com/deppfellow/gs-backend/internal/server"
)

// Middlewares groups every middleware component so the router builds
// them once.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server, auth Authenticator) *Middlewares {
	metrics := NewMetricsMiddleware()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, auth),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         metrics,
		RateLimit:       NewRateLimitMiddleware(s, metrics),
	}
}
