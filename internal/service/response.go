package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ResponseRepository runs post response queries, optionally inside one
// transaction.
type ResponseRepository interface {
	repository.PostResponseStore
	Transact(ctx context.Context, fn func(store repository.PostResponseStore) error) error
}

// ResponseCache memoizes like/dislike counts per post.
type ResponseCache interface {
	ResponseCounts(ctx context.Context, postID int64, load func(context.Context) (*model.ResponseCounts, error)) (*model.ResponseCounts, error)
	InvalidateResponses(ctx context.Context, postID int64)
}

type ResponseService struct {
	responses ResponseRepository
	posts     PostLookup
	cache     ResponseCache
	logger    *zerolog.Logger
}

func NewResponseService(responses ResponseRepository, posts PostLookup, cache ResponseCache, logger *zerolog.Logger) *ResponseService {
	return &ResponseService{
		responses: responses,
		posts:     posts,
		cache:     cache,
		logger:    logger,
	}
}

// Summary returns the like/dislike counts of an active post and the
// caller's current reaction.
func (s *ResponseService) Summary(ctx context.Context, actor *model.User, postID int64) (*model.ResponseSummary, error) {
	if _, err := s.posts.GetActive(ctx, postID); err != nil {
		return nil, err
	}

	counts, err := s.cache.ResponseCounts(ctx, postID, func(ctx context.Context) (*model.ResponseCounts, error) {
		return s.responses.Counts(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	summary := &model.ResponseSummary{Likes: counts.Likes, Dislikes: counts.Dislikes}

	if actor != nil {
		active, err := s.responses.ActiveForUser(ctx, actor.ID, postID)
		if err != nil {
			return nil, err
		}
		if len(active) > 0 {
			summary.UserResponse = active[0].Response
			summary.UserResponseID = active[0].ID
		}
	}

	return summary, nil
}

// Respond applies a like or dislike. The caller's previous reaction is
// always withdrawn; repeating the same reaction leaves none, a different
// one replaces it. created reports whether a new reaction was stored.
//
// Everything runs in one transaction holding the post's row lock, so a
// user never ends up with two active reactions to a post.
func (s *ResponseService) Respond(ctx context.Context, actor *model.User, payload *model.RespondPayload) (summary *model.ResponseSummary, created bool, err error) {
	if err := requireUser(actor); err != nil {
		return nil, false, err
	}

	summary = &model.ResponseSummary{}

	err = s.responses.Transact(ctx, func(store repository.PostResponseStore) error {
		if err := store.LockPost(ctx, payload.PostID); err != nil {
			return err
		}

		active, err := store.ActiveForUser(ctx, actor.ID, payload.PostID)
		if err != nil {
			return err
		}

		toggledOff := false
		if len(active) > 0 {
			toggledOff = active[0].Response == payload.Response
			if err := store.SoftDeleteActiveForUser(ctx, actor.ID, payload.PostID); err != nil {
				return err
			}
		}

		if !toggledOff {
			response, err := store.Create(ctx, actor.ID, payload.PostID, payload.Response)
			if err != nil {
				return err
			}
			summary.UserResponse = response.Response
			summary.UserResponseID = response.ID
			created = true
		}

		counts, err := store.Counts(ctx, payload.PostID)
		if err != nil {
			return err
		}
		summary.Likes, summary.Dislikes = counts.Likes, counts.Dislikes
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.cache.InvalidateResponses(ctx, payload.PostID)

	s.logger.Debug().
		Int64("post_id", payload.PostID).
		Str("response", string(payload.Response)).
		Bool("created", created).
		Msg("post response applied")

	return summary, created, nil
}
