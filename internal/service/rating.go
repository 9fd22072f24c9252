package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// GameLookup finds games that have not been deleted.
type GameLookup interface {
	GetActive(ctx context.Context, id int64) (*model.Game, error)
}

type RatingStore interface {
	Aggregate(ctx context.Context, gameID int64) (*model.RatingAggregate, error)
	GetActiveForUser(ctx context.Context, userID, gameID int64) (*model.Rating, error)
	GetActive(ctx context.Context, id int64) (*model.Rating, error)
	Create(ctx context.Context, userID, gameID int64, score int) (*model.Rating, error)
	UpdateScore(ctx context.Context, id int64, score int) error
	SoftDelete(ctx context.Context, id int64) error
}

// RatingCache memoizes rating aggregates per game.
type RatingCache interface {
	RatingAggregate(ctx context.Context, gameID int64, load func(context.Context) (*model.RatingAggregate, error)) (*model.RatingAggregate, error)
	InvalidateRating(ctx context.Context, gameID int64)
}

type RatingService struct {
	ratings RatingStore
	games   GameLookup
	cache   RatingCache
	logger  *zerolog.Logger
}

func NewRatingService(ratings RatingStore, games GameLookup, cache RatingCache, logger *zerolog.Logger) *RatingService {
	return &RatingService{
		ratings: ratings,
		games:   games,
		cache:   cache,
		logger:  logger,
	}
}

// Summary returns the game's average score over active ratings, rounded
// to two decimals, and the caller's own rating when there is one.
func (s *RatingService) Summary(ctx context.Context, actor *model.User, gameID int64) (*model.RatingSummary, error) {
	if _, err := s.games.GetActive(ctx, gameID); err != nil {
		return nil, err
	}

	agg, err := s.cache.RatingAggregate(ctx, gameID, func(ctx context.Context) (*model.RatingAggregate, error) {
		return s.ratings.Aggregate(ctx, gameID)
	})
	if err != nil {
		return nil, err
	}

	summary := &model.RatingSummary{
		AvgRating:   roundAverage(agg.Average),
		RatingCount: agg.Count,
	}

	if actor == nil {
		return summary, nil
	}

	own, err := s.ratings.GetActiveForUser(ctx, actor.ID, gameID)
	switch {
	case err == nil:
		summary.UserRatingScore = own.Score
		summary.UserRatingID = own.ID
	case !sqlerr.IsNoRows(err):
		return nil, err
	}

	return summary, nil
}

func roundAverage(avg float64) float64 {
	return decimal.NewFromFloat(avg).Round(2).InexactFloat64()
}

// Create rates an active game. A user has at most one active rating per
// game; changing it goes through Update.
func (s *RatingService) Create(ctx context.Context, actor *model.User, payload *model.CreateRatingPayload) (*model.Rating, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	if _, err := s.games.GetActive(ctx, payload.GameID); err != nil {
		return nil, err
	}

	_, err := s.ratings.GetActiveForUser(ctx, actor.ID, payload.GameID)
	switch {
	case err == nil:
		return nil, errs.NewBadRequestError("You have already rated this game", true, errs.Code("RATING_ALREADY_EXISTS"), nil, nil)
	case !sqlerr.IsNoRows(err):
		return nil, err
	}

	rating, err := s.ratings.Create(ctx, actor.ID, payload.GameID, int(payload.Rating))
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateRating(ctx, payload.GameID)
	return rating, nil
}

func (s *RatingService) Get(ctx context.Context, id int64) (*model.Rating, error) {
	return s.ratings.GetActive(ctx, id)
}

// Update changes the score of a rating owned by the caller.
func (s *RatingService) Update(ctx context.Context, actor *model.User, payload *model.UpdateRatingPayload) error {
	rating, err := s.ownedRating(ctx, actor, payload.ID)
	if err != nil {
		return err
	}

	if err := s.ratings.UpdateScore(ctx, rating.ID, int(payload.Rating)); err != nil {
		return err
	}

	s.cache.InvalidateRating(ctx, rating.GameID)
	return nil
}

// Delete soft-deletes a rating owned by the caller.
func (s *RatingService) Delete(ctx context.Context, actor *model.User, id int64) error {
	rating, err := s.ownedRating(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.ratings.SoftDelete(ctx, rating.ID); err != nil {
		return err
	}

	s.cache.InvalidateRating(ctx, rating.GameID)
	return nil
}

func (s *RatingService) ownedRating(ctx context.Context, actor *model.User, id int64) (*model.Rating, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	rating, err := s.ratings.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(actor, rating.UserID); err != nil {
		return nil, err
	}
	return rating, nil
}
