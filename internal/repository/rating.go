package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const ratingColumns = `id, user_id, game_id, score, is_deleted, created_at, updated_at`

type RatingRepository struct {
	db Querier
}

func NewRatingRepository(db Querier) *RatingRepository {
	return &RatingRepository{db: db}
}

// Aggregate computes the average and count of a game's active ratings.
// A game without ratings averages 0.
func (r *RatingRepository) Aggregate(ctx context.Context, gameID int64) (*model.RatingAggregate, error) {
	agg := &model.RatingAggregate{}
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(score), 0)::float8, COUNT(*)
		FROM ratings
		WHERE game_id = $1 AND NOT is_deleted`, gameID,
	).Scan(&agg.Average, &agg.Count)
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// GetActiveForUser returns the user's active rating of the game.
func (r *RatingRepository) GetActiveForUser(ctx context.Context, userID, gameID int64) (*model.Rating, error) {
	return getOne[model.Rating](ctx, r.db, "ratings", `
		SELECT `+ratingColumns+` FROM ratings
		WHERE user_id = $1 AND game_id = $2 AND NOT is_deleted
		ORDER BY id DESC
		LIMIT 1`, userID, gameID)
}

func (r *RatingRepository) GetActive(ctx context.Context, id int64) (*model.Rating, error) {
	return getOne[model.Rating](ctx, r.db, "ratings",
		`SELECT `+ratingColumns+` FROM ratings WHERE id = $1 AND NOT is_deleted`, id)
}

func (r *RatingRepository) Create(ctx context.Context, userID, gameID int64, score int) (*model.Rating, error) {
	return getOne[model.Rating](ctx, r.db, "ratings", `
		INSERT INTO ratings (user_id, game_id, score)
		VALUES ($1, $2, $3)
		RETURNING `+ratingColumns, userID, gameID, score)
}

func (r *RatingRepository) UpdateScore(ctx context.Context, id int64, score int) error {
	return execOne(ctx, r.db, "ratings", `
		UPDATE ratings SET score = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted`, id, score)
}

func (r *RatingRepository) SoftDelete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "ratings", `
		UPDATE ratings SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted`, id)
}
