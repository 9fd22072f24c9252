package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type postService interface {
	ListByGame(ctx context.Context, gameID int64) ([]model.PostListItem, error)
	Create(ctx context.Context, actor *model.User, payload *model.CreatePostPayload) (*model.Post, error)
	Get(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, actor *model.User, payload *model.UpdatePostPayload) (*model.Post, error)
	Delete(ctx context.Context, actor *model.User, id int64) error
}

type responseService interface {
	Summary(ctx context.Context, actor *model.User, postID int64) (*model.ResponseSummary, error)
	Respond(ctx context.Context, actor *model.User, payload *model.RespondPayload) (*model.ResponseSummary, bool, error)
}

type PostHandler struct {
	Handler
	posts     postService
	responses responseService
}

func NewPostHandler(s *server.Server, posts postService, responses responseService) *PostHandler {
	return &PostHandler{
		Handler:   NewHandler(s),
		posts:     posts,
		responses: responses,
	}
}

// ListByGame serves GET /games/:id/posts.
func (h *PostHandler) ListByGame(c echo.Context, payload *model.IDPayload) ([]model.PostListItem, error) {
	return h.posts.ListByGame(c.Request().Context(), payload.ID)
}

// Create serves POST /games/:id/posts.
func (h *PostHandler) Create(c echo.Context, payload *model.CreatePostPayload) (*model.Post, error) {
	return h.posts.Create(c.Request().Context(), caller(c), payload)
}

func (h *PostHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Post, error) {
	return h.posts.Get(c.Request().Context(), payload.ID)
}

func (h *PostHandler) Update(c echo.Context, payload *model.UpdatePostPayload) (*model.Post, error) {
	return h.posts.Update(c.Request().Context(), caller(c), payload)
}

func (h *PostHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.posts.Delete(c.Request().Context(), caller(c), payload.ID)
}

// Responses serves GET /posts/:id/responses.
func (h *PostHandler) Responses(c echo.Context, payload *model.IDPayload) (*model.ResponseSummary, error) {
	return h.responses.Summary(c.Request().Context(), caller(c), payload.ID)
}

// Respond serves POST /posts/:id/responses: 201 when a reaction was
// stored, 200 when repeating one withdrew it.
func (h *PostHandler) Respond(c echo.Context, payload *model.RespondPayload) (StatusResult, error) {
	summary, created, err := h.responses.Respond(c.Request().Context(), caller(c), payload)
	if err != nil {
		return StatusResult{}, err
	}
	if created {
		return WithStatus(http.StatusCreated, summary), nil
	}
	return WithStatus(http.StatusOK, summary), nil
}
