package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/rs/zerolog"
)

type PostStore interface {
	ListByGame(ctx context.Context, gameID int64) ([]model.PostListItem, error)
	GetActive(ctx context.Context, id int64) (*model.Post, error)
	Create(ctx context.Context, userID, gameID int64, text string) (*model.Post, error)
	UpdateText(ctx context.Context, id int64, text string) (*model.Post, error)
	SoftDelete(ctx context.Context, id int64) error
}

type PostService struct {
	posts  PostStore
	games  GameLookup
	logger *zerolog.Logger
}

func NewPostService(posts PostStore, games GameLookup, logger *zerolog.Logger) *PostService {
	return &PostService{posts: posts, games: games, logger: logger}
}

// ListByGame returns the active posts of an active game, newest first.
func (s *PostService) ListByGame(ctx context.Context, gameID int64) ([]model.PostListItem, error) {
	if _, err := s.games.GetActive(ctx, gameID); err != nil {
		return nil, err
	}
	return s.posts.ListByGame(ctx, gameID)
}

func (s *PostService) Create(ctx context.Context, actor *model.User, payload *model.CreatePostPayload) (*model.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	text, err := cleanText(payload.Text)
	if err != nil {
		return nil, err
	}

	if _, err := s.games.GetActive(ctx, payload.GameID); err != nil {
		return nil, err
	}

	return s.posts.Create(ctx, actor.ID, payload.GameID, text)
}

func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	return s.posts.GetActive(ctx, id)
}

func (s *PostService) Update(ctx context.Context, actor *model.User, payload *model.UpdatePostPayload) (*model.Post, error) {
	post, err := s.ownedPost(ctx, actor, payload.ID)
	if err != nil {
		return nil, err
	}

	text, err := cleanText(payload.Text)
	if err != nil {
		return nil, err
	}

	return s.posts.UpdateText(ctx, post.ID, text)
}

// Delete soft-deletes the post. Its comments and reactions are kept but
// become unreachable with it.
func (s *PostService) Delete(ctx context.Context, actor *model.User, id int64) error {
	post, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.posts.SoftDelete(ctx, post.ID)
}

func (s *PostService) ownedPost(ctx context.Context, actor *model.User, id int64) (*model.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	post, err := s.posts.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(actor, post.UserID); err != nil {
		return nil, err
	}
	return post, nil
}
