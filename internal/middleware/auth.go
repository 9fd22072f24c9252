package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	msgNoTokenCredentials = "Invalid token header. No credentials provided."
	msgBadBasicHeader     = "Invalid basic header. Credentials not correctly base64 encoded."
	msgInvalidSession     = "Invalid session token."
	msgAuthRequired       = "Authentication credentials were not provided."
)

// Authenticator resolves request credentials to a local user.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, key string) (*model.User, error)
	AuthenticateBasic(ctx context.Context, username, password string) (*model.User, error)
	AuthenticateExternal(ctx context.Context, externalID string) (*model.User, error)
}

type AuthMiddleware struct {
	server       *server.Server
	auth         Authenticator
	clerkEnabled bool
}

func NewAuthMiddleware(s *server.Server, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:       s,
		auth:         auth,
		clerkEnabled: s.Config.Auth.ClerkSecretKey != "",
	}
}

// Authenticate identifies the caller from the Authorization header and
// stores the user in the echo context. Requests without credentials, or
// with a scheme nobody handles, continue anonymously. Bad credentials
// fail with 401.
//
// Accepted schemes:
//
//	Authorization: Token <key>
//	Authorization: Basic <base64 username:password>
//	Authorization: Bearer <Clerk session JWT>   (only with a Clerk secret key)
func (auth *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	bearer := auth.clerkSession(next)

	return func(c echo.Context) error {
		header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if header == "" {
			return next(c)
		}

		scheme, credentials, _ := strings.Cut(header, " ")
		credentials = strings.TrimSpace(credentials)
		ctx := c.Request().Context()

		switch strings.ToLower(scheme) {
		case "token":
			if credentials == "" {
				return errs.NewUnauthorizedError(msgNoTokenCredentials, true)
			}
			user, err := auth.auth.AuthenticateToken(ctx, credentials)
			if err != nil {
				return err
			}
			return auth.proceed(c, next, user, "token")

		case "basic":
			username, password, ok := c.Request().BasicAuth()
			if !ok {
				return errs.NewUnauthorizedError(msgBadBasicHeader, true)
			}
			user, err := auth.auth.AuthenticateBasic(ctx, username, password)
			if err != nil {
				return err
			}
			return auth.proceed(c, next, user, "basic")

		case "bearer":
			if auth.clerkEnabled {
				return bearer(c)
			}
		}

		return next(c)
	}
}

// clerkSession verifies a Clerk session token with the Clerk middleware
// and maps its subject to a local user.
func (auth *AuthMiddleware) clerkSession(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		))(
		func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				return errs.NewUnauthorizedError(msgInvalidSession, false)
			}

			user, err := auth.auth.AuthenticateExternal(c.Request().Context(), claims.Subject)
			if err != nil {
				return err
			}
			return auth.proceed(c, next, user, "clerk")
		})
}

// writeUnauthorized runs outside echo, so it renders the error body itself.
func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError(msgInvalidSession, false)); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "clerkSession").
			Dur("duration", time.Since(start)).
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "clerkSession").
		Str("request_id", r.Header.Get(RequestIDHeader)).
		Msg("rejected clerk session token")
}

func (auth *AuthMiddleware) proceed(c echo.Context, next echo.HandlerFunc, user *model.User, method string) error {
	setUser(c, user)

	GetLogger(c).Debug().
		Str("auth_method", method).
		Msg("user authenticated")

	return next(c)
}

// RequireAuth rejects anonymous callers. It must run after Authenticate.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUser(c) == nil {
			return errs.NewUnauthorizedError(msgAuthRequired, true)
		}
		return next(c)
	}
}
