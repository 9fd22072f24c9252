package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

type SeriesRepository struct {
	db Querier
}

func NewSeriesRepository(db Querier) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) List(ctx context.Context) ([]model.Series, error) {
	return getMany[model.Series](ctx, r.db, "series",
		`SELECT `+namedColumns+` FROM series ORDER BY id`)
}

func (r *SeriesRepository) GetByID(ctx context.Context, id int64) (*model.Series, error) {
	return getOne[model.Series](ctx, r.db, "series",
		`SELECT `+namedColumns+` FROM series WHERE id = $1`, id)
}

func (r *SeriesRepository) Create(ctx context.Context, name string) (*model.Series, error) {
	return getOne[model.Series](ctx, r.db, "series",
		`INSERT INTO series (name) VALUES ($1) RETURNING `+namedColumns, name)
}

func (r *SeriesRepository) Update(ctx context.Context, id int64, name string) (*model.Series, error) {
	return getOne[model.Series](ctx, r.db, "series", `
		UPDATE series SET name = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+namedColumns, id, name)
}

// Delete removes the series. Postgres refuses while a game references it.
func (r *SeriesRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "series", `DELETE FROM series WHERE id = $1`, id)
}
