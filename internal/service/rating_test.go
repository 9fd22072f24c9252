package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ratingFixture struct {
	ratings *mockRatingStore
	games   *mockGameStore
	cache   *passthroughCache
	svc     *RatingService
}

func newRatingFixture() *ratingFixture {
	f := &ratingFixture{
		ratings: &mockRatingStore{},
		games:   &mockGameStore{},
		cache:   &passthroughCache{},
	}
	f.svc = NewRatingService(f.ratings, f.games, f.cache, nopLogger())
	return f
}

func activeGame(id int64) *model.Game {
	return &model.Game{Base: model.Base{ID: id}, Name: "Hades"}
}

func TestRatingSummary(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.games.On("GetActive", ctx, int64(1)).Return(activeGame(1), nil)
	f.ratings.On("Aggregate", ctx, int64(1)).Return(&model.RatingAggregate{Average: 20.0 / 3.0, Count: 3}, nil)
	f.ratings.On("GetActiveForUser", ctx, player.ID, int64(1)).
		Return(&model.Rating{Base: model.Base{ID: 11}, Score: 8}, nil)

	summary, err := f.svc.Summary(ctx, player, 1)
	require.NoError(t, err)
	assert.Equal(t, &model.RatingSummary{
		AvgRating:       6.67,
		RatingCount:     3,
		UserRatingScore: 8,
		UserRatingID:    11,
	}, summary)
}

func TestRatingSummaryAnonymousAndEmpty(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.games.On("GetActive", ctx, int64(1)).Return(activeGame(1), nil)
	f.ratings.On("Aggregate", ctx, int64(1)).Return(&model.RatingAggregate{}, nil)
	f.ratings.On("GetActiveForUser", ctx, stranger.ID, int64(1)).Return(nil, noRows("ratings"))

	summary, err := f.svc.Summary(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, &model.RatingSummary{}, summary)

	summary, err = f.svc.Summary(ctx, stranger, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.UserRatingID)

	f.ratings.AssertNumberOfCalls(t, "GetActiveForUser", 1)
}

func TestRatingSummaryDeletedGame(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.games.On("GetActive", ctx, int64(5)).Return(nil, noRows("games"))

	_, err := f.svc.Summary(ctx, nil, 5)
	assert.Error(t, err)
	f.ratings.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
}

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 6.67, roundAverage(6.666666))
	assert.Equal(t, 7.5, roundAverage(7.5))
	assert.Equal(t, 0.0, roundAverage(0))
	assert.Equal(t, 3.13, roundAverage(3.125))
}

func TestCreateRating(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.games.On("GetActive", ctx, int64(1)).Return(activeGame(1), nil)
	f.ratings.On("GetActiveForUser", ctx, player.ID, int64(1)).Return(nil, noRows("ratings"))
	f.ratings.On("Create", ctx, player.ID, int64(1), 9).
		Return(&model.Rating{Base: model.Base{ID: 4}, UserID: player.ID, GameID: 1, Score: 9}, nil)
	f.cache.On("InvalidateRating", ctx, int64(1)).Once()

	rating, err := f.svc.Create(ctx, player, &model.CreateRatingPayload{GameID: 1, Rating: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, rating.Score)

	f.cache.AssertExpectations(t)
}

func TestCreateRatingTwiceIsRejected(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.games.On("GetActive", ctx, int64(1)).Return(activeGame(1), nil)
	f.ratings.On("GetActiveForUser", ctx, player.ID, int64(1)).Return(&model.Rating{Base: model.Base{ID: 4}}, nil)

	_, err := f.svc.Create(ctx, player, &model.CreateRatingPayload{GameID: 1, Rating: 3})
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "RATING_ALREADY_EXISTS", httpErr.Code)
	f.ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRatingAnonymous(t *testing.T) {
	f := newRatingFixture()

	_, err := f.svc.Create(context.Background(), nil, &model.CreateRatingPayload{GameID: 1, Rating: 3})
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestUpdateRatingOwnership(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.ratings.On("GetActive", ctx, int64(4)).
		Return(&model.Rating{Base: model.Base{ID: 4}, UserID: player.ID, GameID: 1, Score: 5}, nil)

	err := f.svc.Update(ctx, stranger, &model.UpdateRatingPayload{ID: 4, Rating: 1})
	requireHTTPError(t, err, http.StatusForbidden)

	f.ratings.On("UpdateScore", ctx, int64(4), 6).Return(nil).Twice()
	f.cache.On("InvalidateRating", ctx, int64(1)).Twice()

	require.NoError(t, f.svc.Update(ctx, player, &model.UpdateRatingPayload{ID: 4, Rating: 6}))
	require.NoError(t, f.svc.Update(ctx, superuser, &model.UpdateRatingPayload{ID: 4, Rating: 6}))

	f.ratings.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestDeleteRating(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.ratings.On("GetActive", ctx, int64(4)).
		Return(&model.Rating{Base: model.Base{ID: 4}, UserID: player.ID, GameID: 2}, nil)
	f.ratings.On("SoftDelete", ctx, int64(4)).Return(nil).Once()
	f.cache.On("InvalidateRating", ctx, int64(2)).Once()

	require.NoError(t, f.svc.Delete(ctx, player, 4))

	f.ratings.On("GetActive", ctx, int64(5)).Return(nil, noRows("ratings"))
	assert.True(t, sqlerr.IsNoRows(f.svc.Delete(ctx, player, 5)))

	f.ratings.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}
