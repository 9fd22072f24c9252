// Package middleware holds the global and route-level echo middleware.
//
// It covers request ids, the request-scoped logger, authentication (API
// token, HTTP basic and optional Clerk sessions), request logging,
// Prometheus metrics, New Relic tracing, rate limiting and the global
// error handler.
package middleware
