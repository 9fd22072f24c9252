package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// result returns the first mocked return value as *T, nil when unset.
func result[T any](args mock.Arguments, i int) *T {
	if v, ok := args.Get(i).(*T); ok {
		return v
	}
	return nil
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, p repository.CreateUserParams) (*model.User, error) {
	args := m.Called(ctx, p)
	return result[model.User](args, 0), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	return result[model.User](args, 0), args.Error(1)
}

func (m *mockUserStore) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	return result[model.User](args, 0), args.Error(1)
}

func (m *mockUserStore) GetByToken(ctx context.Context, key string) (*model.User, error) {
	args := m.Called(ctx, key)
	return result[model.User](args, 0), args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (*model.User, error) {
	args := m.Called(ctx, id, firstName, lastName)
	return result[model.User](args, 0), args.Error(1)
}

func (m *mockUserStore) SetSuperuser(ctx context.Context, id int64, passwordHash string) (*model.User, error) {
	args := m.Called(ctx, id, passwordHash)
	return result[model.User](args, 0), args.Error(1)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) GetOrCreate(ctx context.Context, userID int64, key string) (*model.AuthToken, error) {
	args := m.Called(ctx, userID, key)
	return result[model.AuthToken](args, 0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error {
	return m.Called(ctx, to, firstName).Error(0)
}

type mockCompanyStore struct{ mock.Mock }

func (m *mockCompanyStore) List(ctx context.Context) ([]model.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Company), args.Error(1)
}

func (m *mockCompanyStore) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	args := m.Called(ctx, id)
	return result[model.Company](args, 0), args.Error(1)
}

func (m *mockCompanyStore) Create(ctx context.Context, name string) (*model.Company, error) {
	args := m.Called(ctx, name)
	return result[model.Company](args, 0), args.Error(1)
}

func (m *mockCompanyStore) Update(ctx context.Context, id int64, name string) (*model.Company, error) {
	args := m.Called(ctx, id, name)
	return result[model.Company](args, 0), args.Error(1)
}

func (m *mockCompanyStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSeriesStore struct{ mock.Mock }

func (m *mockSeriesStore) List(ctx context.Context) ([]model.Series, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Series), args.Error(1)
}

func (m *mockSeriesStore) GetByID(ctx context.Context, id int64) (*model.Series, error) {
	args := m.Called(ctx, id)
	return result[model.Series](args, 0), args.Error(1)
}

func (m *mockSeriesStore) Create(ctx context.Context, name string) (*model.Series, error) {
	args := m.Called(ctx, name)
	return result[model.Series](args, 0), args.Error(1)
}

func (m *mockSeriesStore) Update(ctx context.Context, id int64, name string) (*model.Series, error) {
	args := m.Called(ctx, id, name)
	return result[model.Series](args, 0), args.Error(1)
}

func (m *mockSeriesStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockGameStore struct{ mock.Mock }

func (m *mockGameStore) ListActive(ctx context.Context) ([]model.Game, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Game), args.Error(1)
}

func (m *mockGameStore) GetActive(ctx context.Context, id int64) (*model.Game, error) {
	args := m.Called(ctx, id)
	return result[model.Game](args, 0), args.Error(1)
}

func (m *mockGameStore) GetDetails(ctx context.Context, id int64) (*model.GameWithRelations, error) {
	args := m.Called(ctx, id)
	return result[model.GameWithRelations](args, 0), args.Error(1)
}

func (m *mockGameStore) Create(ctx context.Context, p model.GamePayload) (*model.Game, error) {
	args := m.Called(ctx, p)
	return result[model.Game](args, 0), args.Error(1)
}

func (m *mockGameStore) Update(ctx context.Context, id int64, p model.GamePayload) (*model.Game, error) {
	args := m.Called(ctx, id, p)
	return result[model.Game](args, 0), args.Error(1)
}

func (m *mockGameStore) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRatingStore struct{ mock.Mock }

func (m *mockRatingStore) Aggregate(ctx context.Context, gameID int64) (*model.RatingAggregate, error) {
	args := m.Called(ctx, gameID)
	return result[model.RatingAggregate](args, 0), args.Error(1)
}

func (m *mockRatingStore) GetActiveForUser(ctx context.Context, userID, gameID int64) (*model.Rating, error) {
	args := m.Called(ctx, userID, gameID)
	return result[model.Rating](args, 0), args.Error(1)
}

func (m *mockRatingStore) GetActive(ctx context.Context, id int64) (*model.Rating, error) {
	args := m.Called(ctx, id)
	return result[model.Rating](args, 0), args.Error(1)
}

func (m *mockRatingStore) Create(ctx context.Context, userID, gameID int64, score int) (*model.Rating, error) {
	args := m.Called(ctx, userID, gameID, score)
	return result[model.Rating](args, 0), args.Error(1)
}

func (m *mockRatingStore) UpdateScore(ctx context.Context, id int64, score int) error {
	return m.Called(ctx, id, score).Error(0)
}

func (m *mockRatingStore) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// passthroughCache never caches, but records invalidations.
type passthroughCache struct{ mock.Mock }

func (c *passthroughCache) RatingAggregate(ctx context.Context, _ int64, load func(context.Context) (*model.RatingAggregate, error)) (*model.RatingAggregate, error) {
	return load(ctx)
}

func (c *passthroughCache) InvalidateRating(ctx context.Context, gameID int64) {
	c.Called(ctx, gameID)
}

func (c *passthroughCache) ResponseCounts(ctx context.Context, _ int64, load func(context.Context) (*model.ResponseCounts, error)) (*model.ResponseCounts, error) {
	return load(ctx)
}

func (c *passthroughCache) InvalidateResponses(ctx context.Context, postID int64) {
	c.Called(ctx, postID)
}

type mockPostStore struct{ mock.Mock }

func (m *mockPostStore) ListByGame(ctx context.Context, gameID int64) ([]model.PostListItem, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).([]model.PostListItem), args.Error(1)
}

func (m *mockPostStore) GetActive(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	return result[model.Post](args, 0), args.Error(1)
}

func (m *mockPostStore) Create(ctx context.Context, userID, gameID int64, text string) (*model.Post, error) {
	args := m.Called(ctx, userID, gameID, text)
	return result[model.Post](args, 0), args.Error(1)
}

func (m *mockPostStore) UpdateText(ctx context.Context, id int64, text string) (*model.Post, error) {
	args := m.Called(ctx, id, text)
	return result[model.Post](args, 0), args.Error(1)
}

func (m *mockPostStore) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentStore struct{ mock.Mock }

func (m *mockCommentStore) ListByPost(ctx context.Context, postID int64) ([]model.CommentListItem, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]model.CommentListItem), args.Error(1)
}

func (m *mockCommentStore) GetActive(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	return result[model.Comment](args, 0), args.Error(1)
}

func (m *mockCommentStore) Create(ctx context.Context, userID, postID int64, text string) (*model.Comment, error) {
	args := m.Called(ctx, userID, postID, text)
	return result[model.Comment](args, 0), args.Error(1)
}

func (m *mockCommentStore) UpdateText(ctx context.Context, id int64, text string) (*model.Comment, error) {
	args := m.Called(ctx, id, text)
	return result[model.Comment](args, 0), args.Error(1)
}

func (m *mockCommentStore) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// mockResponseRepository runs Transact callbacks against itself and
// records whether they were committed.
type mockResponseRepository struct {
	mock.Mock
	committed bool
}

func (m *mockResponseRepository) Transact(ctx context.Context, fn func(store repository.PostResponseStore) error) error {
	if err := fn(m); err != nil {
		return err
	}
	m.committed = true
	return nil
}

func (m *mockResponseRepository) LockPost(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *mockResponseRepository) Counts(ctx context.Context, postID int64) (*model.ResponseCounts, error) {
	args := m.Called(ctx, postID)
	return result[model.ResponseCounts](args, 0), args.Error(1)
}

func (m *mockResponseRepository) ActiveForUser(ctx context.Context, userID, postID int64) ([]model.PostResponse, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).([]model.PostResponse), args.Error(1)
}

func (m *mockResponseRepository) SoftDeleteActiveForUser(ctx context.Context, userID, postID int64) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockResponseRepository) Create(ctx context.Context, userID, postID int64, response model.ResponseType) (*model.PostResponse, error) {
	args := m.Called(ctx, userID, postID, response)
	return result[model.PostResponse](args, 0), args.Error(1)
}
