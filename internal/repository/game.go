package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const gameColumns = `id, name, picture_url, genre_1, genre_2, developer_id, publisher_id,
	series_id, release_year, is_deleted, created_at, updated_at`

type GameRepository struct {
	db Querier
}

func NewGameRepository(db Querier) *GameRepository {
	return &GameRepository{db: db}
}

// ListActive returns every game that has not been deleted.
func (r *GameRepository) ListActive(ctx context.Context) ([]model.Game, error) {
	return getMany[model.Game](ctx, r.db, "games",
		`SELECT `+gameColumns+` FROM games WHERE NOT is_deleted ORDER BY id`)
}

// GetActive fails with a "no rows" error for missing and deleted games alike.
func (r *GameRepository) GetActive(ctx context.Context, id int64) (*model.Game, error) {
	return getOne[model.Game](ctx, r.db, "games",
		`SELECT `+gameColumns+` FROM games WHERE id = $1 AND NOT is_deleted`, id)
}

// GetDetails loads an active game with the names of its companies and series.
func (r *GameRepository) GetDetails(ctx context.Context, id int64) (*model.GameWithRelations, error) {
	return getOne[model.GameWithRelations](ctx, r.db, "games", `
		SELECT
			g.id, g.name, g.picture_url, g.genre_1, g.genre_2, g.developer_id, g.publisher_id,
			g.series_id, g.release_year, g.is_deleted, g.created_at, g.updated_at,
			d.name AS developer_name,
			p.name AS publisher_name,
			s.name AS series_name
		FROM games g
		JOIN companies d ON d.id = g.developer_id
		JOIN companies p ON p.id = g.publisher_id
		LEFT JOIN series s ON s.id = g.series_id
		WHERE g.id = $1 AND NOT g.is_deleted`, id)
}

func (r *GameRepository) Create(ctx context.Context, p model.GamePayload) (*model.Game, error) {
	return getOne[model.Game](ctx, r.db, "games", `
		INSERT INTO games (name, picture_url, genre_1, genre_2, developer_id, publisher_id, series_id, release_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+gameColumns,
		p.Name, p.PictureURL, p.Genre1, p.Genre2Value(), p.DeveloperID, p.PublisherID, p.SeriesID, p.ReleaseYear,
	)
}

// Update replaces every writable column of an active game.
func (r *GameRepository) Update(ctx context.Context, id int64, p model.GamePayload) (*model.Game, error) {
	return getOne[model.Game](ctx, r.db, "games", `
		UPDATE games
		SET name = $2, picture_url = $3, genre_1 = $4, genre_2 = $5, developer_id = $6,
			publisher_id = $7, series_id = $8, release_year = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+gameColumns,
		id, p.Name, p.PictureURL, p.Genre1, p.Genre2Value(), p.DeveloperID, p.PublisherID, p.SeriesID, p.ReleaseYear,
	)
}

func (r *GameRepository) SoftDelete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "games", `
		UPDATE games SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted`, id)
}
