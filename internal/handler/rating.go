package handler

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type ratingService interface {
	Summary(ctx context.Context, actor *model.User, gameID int64) (*model.RatingSummary, error)
	Create(ctx context.Context, actor *model.User, payload *model.CreateRatingPayload) (*model.Rating, error)
	Get(ctx context.Context, id int64) (*model.Rating, error)
	Update(ctx context.Context, actor *model.User, payload *model.UpdateRatingPayload) error
	Delete(ctx context.Context, actor *model.User, id int64) error
}

type RatingHandler struct {
	Handler
	ratings ratingService
}

func NewRatingHandler(s *server.Server, ratings ratingService) *RatingHandler {
	return &RatingHandler{Handler: NewHandler(s), ratings: ratings}
}

// Summary serves GET /games/:id/ratings.
func (h *RatingHandler) Summary(c echo.Context, payload *model.IDPayload) (*model.RatingSummary, error) {
	return h.ratings.Summary(c.Request().Context(), caller(c), payload.ID)
}

// Create serves POST /games/:id/ratings.
func (h *RatingHandler) Create(c echo.Context, payload *model.CreateRatingPayload) (*model.Rating, error) {
	return h.ratings.Create(c.Request().Context(), caller(c), payload)
}

func (h *RatingHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Rating, error) {
	return h.ratings.Get(c.Request().Context(), payload.ID)
}

func (h *RatingHandler) Update(c echo.Context, payload *model.UpdateRatingPayload) error {
	return h.ratings.Update(c.Request().Context(), caller(c), payload)
}

func (h *RatingHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.ratings.Delete(c.Request().Context(), caller(c), payload.ID)
}
