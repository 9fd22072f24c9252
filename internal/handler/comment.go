package handler

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type commentService interface {
	ListByPost(ctx context.Context, postID int64) ([]model.CommentListItem, error)
	Create(ctx context.Context, actor *model.User, payload *model.CreateCommentPayload) (*model.Comment, error)
	Get(ctx context.Context, id int64) (*model.Comment, error)
	Update(ctx context.Context, actor *model.User, payload *model.UpdateCommentPayload) (*model.Comment, error)
	Delete(ctx context.Context, actor *model.User, id int64) error
}

type CommentHandler struct {
	Handler
	comments commentService
}

func NewCommentHandler(s *server.Server, comments commentService) *CommentHandler {
	return &CommentHandler{Handler: NewHandler(s), comments: comments}
}

// ListByPost serves GET /posts/:id/comments.
func (h *CommentHandler) ListByPost(c echo.Context, payload *model.IDPayload) ([]model.CommentListItem, error) {
	return h.comments.ListByPost(c.Request().Context(), payload.ID)
}

// Create serves POST /posts/:id/comments.
func (h *CommentHandler) Create(c echo.Context, payload *model.CreateCommentPayload) (*model.Comment, error) {
	return h.comments.Create(c.Request().Context(), caller(c), payload)
}

func (h *CommentHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Comment, error) {
	return h.comments.Get(c.Request().Context(), payload.ID)
}

func (h *CommentHandler) Update(c echo.Context, payload *model.UpdateCommentPayload) (*model.Comment, error) {
	return h.comments.Update(c.Request().Context(), caller(c), payload)
}

func (h *CommentHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.comments.Delete(c.Request().Context(), caller(c), payload.ID)
}
