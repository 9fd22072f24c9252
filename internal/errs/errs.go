// Package errs defines the error types returned to API clients.
//
// Every handler and service returns errors; the global error handler
// renders *HTTPError values as JSON with a stable shape.
package errs
