package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/rs/zerolog"
)

// PostLookup finds posts that have not been deleted.
type PostLookup interface {
	GetActive(ctx context.Context, id int64) (*model.Post, error)
}

type CommentStore interface {
	ListByPost(ctx context.Context, postID int64) ([]model.CommentListItem, error)
	GetActive(ctx context.Context, id int64) (*model.Comment, error)
	Create(ctx context.Context, userID, postID int64, text string) (*model.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) (*model.Comment, error)
	SoftDelete(ctx context.Context, id int64) error
}

type CommentService struct {
	comments CommentStore
	posts    PostLookup
	logger   *zerolog.Logger
}

func NewCommentService(comments CommentStore, posts PostLookup, logger *zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, logger: logger}
}

// ListByPost returns the active comments of an active post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.CommentListItem, error) {
	if _, err := s.posts.GetActive(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *CommentService) Create(ctx context.Context, actor *model.User, payload *model.CreateCommentPayload) (*model.Comment, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	text, err := cleanText(payload.Text)
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.GetActive(ctx, payload.PostID); err != nil {
		return nil, err
	}

	return s.comments.Create(ctx, actor.ID, payload.PostID, text)
}

func (s *CommentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	return s.comments.GetActive(ctx, id)
}

func (s *CommentService) Update(ctx context.Context, actor *model.User, payload *model.UpdateCommentPayload) (*model.Comment, error) {
	comment, err := s.ownedComment(ctx, actor, payload.ID)
	if err != nil {
		return nil, err
	}

	text, err := cleanText(payload.Text)
	if err != nil {
		return nil, err
	}

	return s.comments.UpdateText(ctx, comment.ID, text)
}

func (s *CommentService) Delete(ctx context.Context, actor *model.User, id int64) error {
	comment, err := s.ownedComment(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.comments.SoftDelete(ctx, comment.ID)
}

func (s *CommentService) ownedComment(ctx context.Context, actor *model.User, id int64) (*model.Comment, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(actor, comment.UserID); err != nil {
		return nil, err
	}
	return comment, nil
}
