package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/gs-backend/internal/config"
	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct{ mock.Mock }

func (m *mockAuthenticator) AuthenticateToken(ctx context.Context, key string) (*model.User, error) {
	args := m.Called(ctx, key)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthenticator) AuthenticateBasic(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthenticator) AuthenticateExternal(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{RateLimit: 1},
		},
		Logger: &logger,
	}
}

func newContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
}

// captureUser is a terminal handler recording who the request ran as.
func captureUser(got **model.User) echo.HandlerFunc {
	return func(c echo.Context) error {
		*got = GetUser(c)
		return c.NoContent(http.StatusNoContent)
	}
}

func TestAuthenticateToken(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	m := NewAuthMiddleware(newTestServer(), auth)

	ada := &model.User{ID: 7, Username: "ada"}
	auth.On("AuthenticateToken", mock.Anything, "abc123").Return(ada, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc123")
	c, _ := newContext(e, req)

	var got *model.User
	require.NoError(t, m.Authenticate(captureUser(&got))(c))
	assert.Same(t, ada, got)
	assert.Equal(t, int64(7), GetUserID(c))
}

func TestAuthenticateTokenErrors(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	m := NewAuthMiddleware(newTestServer(), auth)

	auth.On("AuthenticateToken", mock.Anything, "bad").
		Return(nil, errs.NewUnauthorizedError("Invalid token.", true))

	for _, header := range []string{"Token", "Token bad"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		c, _ := newContext(e, req)

		var got *model.User
		requireStatus(t, m.Authenticate(captureUser(&got))(c), http.StatusUnauthorized)
		assert.Nil(t, got)
	}
}

func TestAuthenticateBasic(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	m := NewAuthMiddleware(newTestServer(), auth)

	ada := &model.User{ID: 7, Username: "ada"}
	auth.On("AuthenticateBasic", mock.Anything, "ada", "s3cret!").Return(ada, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("ada", "s3cret!")
	c, _ := newContext(e, req)

	var got *model.User
	require.NoError(t, m.Authenticate(captureUser(&got))(c))
	assert.Same(t, ada, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic %%%")
	c, _ = newContext(e, req)
	requireStatus(t, m.Authenticate(captureUser(&got))(c), http.StatusUnauthorized)
}

func TestAuthenticateAnonymous(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	m := NewAuthMiddleware(newTestServer(), auth)

	for _, header := range []string{"", "Bearer some.jwt.value", "Digest whatever"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		c, rec := newContext(e, req)

		got := &model.User{}
		require.NoError(t, m.Authenticate(captureUser(&got))(c))
		assert.Nil(t, got)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	auth.AssertNotCalled(t, "AuthenticateExternal", mock.Anything, mock.Anything)
}

func TestAuthenticateBearerWithoutClerk(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	m := NewAuthMiddleware(newTestServer(), auth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	c, rec := newContext(e, req)

	got := &model.User{}
	require.NoError(t, m.Authenticate(captureUser(&got))(c))
	assert.Nil(t, got)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	auth.AssertNotCalled(t, "AuthenticateExternal", mock.Anything, mock.Anything)
}

func TestAuthenticateBearerRejectedByClerk(t *testing.T) {
	e := echo.New()
	auth := &mockAuthenticator{}
	s := newTestServer()
	s.Config.Auth.ClerkSecretKey = "sk_test_gs"
	m := NewAuthMiddleware(s, auth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	c, rec := newContext(e, req)

	var got *model.User
	called := false
	next := func(c echo.Context) error {
		called = true
		return captureUser(&got)(c)
	}
	require.NoError(t, m.Authenticate(next)(c))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, msgInvalidSession, body.Message)
	auth.AssertNotCalled(t, "AuthenticateExternal", mock.Anything, mock.Anything)
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(newTestServer(), &mockAuthenticator{})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/me", nil))
	requireStatus(t, m.RequireAuth(next)(c), http.StatusUnauthorized)

	c, rec := newContext(e, httptest.NewRequest(http.MethodGet, "/me", nil))
	setUser(c, &model.User{ID: 1})
	require.NoError(t, m.RequireAuth(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return nil }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	c, rec := newContext(e, req)
	require.NoError(t, RequestID()(next)(c))
	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	c, rec = newContext(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, RequestID()(next)(c))
	assert.Len(t, GetRequestID(c), 36)
	assert.Equal(t, GetRequestID(c), rec.Header().Get(RequestIDHeader))
}

func TestGetLoggerFallback(t *testing.T) {
	c, _ := newContext(echo.New(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotNil(t, GetLogger(c))
	assert.Nil(t, GetUser(c))
	assert.Zero(t, GetUserID(c))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	e := echo.New()
	global := NewGlobalMiddlewares(newTestServer())

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "missing row",
			err:     sqlerr.WrapNoRows("games", pgx.ErrNoRows),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Game not found",
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Route not found",
		},
		{
			name:    "throttled",
			err:     echo.NewHTTPError(http.StatusTooManyRequests, "Request was throttled."),
			status:  http.StatusTooManyRequests,
			code:    "TOO_MANY_REQUESTS",
			message: "Request was throttled.",
		},
		{
			name:    "forbidden",
			err:     errs.NewForbiddenError("You do not have permission to perform this action.", true),
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
			message: "You do not have permission to perform this action.",
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(e, httptest.NewRequest(http.MethodGet, "/games/1", nil))
			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, errorStatus(errs.NewBadRequestError("x", false, nil, nil, nil), 200))
	assert.Equal(t, http.StatusMethodNotAllowed, errorStatus(echo.ErrMethodNotAllowed, 200))
	assert.Equal(t, http.StatusNotFound, errorStatus(pgx.ErrNoRows, 200))
	assert.Equal(t, 500, errorStatus(errors.New("boom"), 500))

	inUse := fmt.Errorf("failed to delete company: %w", &pgconn.PgError{
		Code:      "23503",
		TableName: "games",
		Message:   `update or delete on table "companies" violates foreign key constraint "games_developer_id_fkey" on table "games"`,
	})
	assert.Equal(t, http.StatusBadRequest, errorStatus(inUse, 500))
	assert.Equal(t, http.StatusBadRequest, errorStatus(&pgconn.PgError{Code: "23505", TableName: "users"}, 500))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(&pgconn.PgError{Code: "57014"}, 200))
}
