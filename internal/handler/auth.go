package handler

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type authService interface {
	Signup(ctx context.Context, payload *model.SignupPayload) (*model.User, error)
	ObtainToken(ctx context.Context, payload *model.ObtainTokenPayload) (*model.TokenResponse, error)
	UpdateProfile(ctx context.Context, actor *model.User, payload *model.UpdateProfilePayload) (*model.User, error)
}

// AuthHandler serves sign-up, token exchange and the caller's profile.
type AuthHandler struct {
	Handler
	auth authService
}

func NewAuthHandler(s *server.Server, auth authService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Signup(c echo.Context, payload *model.SignupPayload) (*model.User, error) {
	return h.auth.Signup(c.Request().Context(), payload)
}

func (h *AuthHandler) ObtainToken(c echo.Context, payload *model.ObtainTokenPayload) (*model.TokenResponse, error) {
	return h.auth.ObtainToken(c.Request().Context(), payload)
}

// Me returns the caller. The route is guarded by RequireAuth.
func (h *AuthHandler) Me(c echo.Context, _ *model.EmptyPayload) (*model.User, error) {
	return caller(c), nil
}

func (h *AuthHandler) UpdateMe(c echo.Context, payload *model.UpdateProfilePayload) (*model.User, error) {
	return h.auth.UpdateProfile(c.Request().Context(), caller(c), payload)
}
