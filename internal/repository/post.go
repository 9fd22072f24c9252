package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const postColumns = `id, user_id, game_id, text, is_deleted, created_at, updated_at`

type PostRepository struct {
	db Querier
}

func NewPostRepository(db Querier) *PostRepository {
	return &PostRepository{db: db}
}

// ListByGame returns the active posts of a game, newest first, with the
// author's username and the game's name.
func (r *PostRepository) ListByGame(ctx context.Context, gameID int64) ([]model.PostListItem, error) {
	return getMany[model.PostListItem](ctx, r.db, "posts", `
		SELECT p.id, u.username, g.name AS game_name, p.text, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		JOIN games g ON g.id = p.game_id
		WHERE p.game_id = $1 AND NOT p.is_deleted
		ORDER BY p.created_at DESC, p.id DESC`, gameID)
}

func (r *PostRepository) GetActive(ctx context.Context, id int64) (*model.Post, error) {
	return getOne[model.Post](ctx, r.db, "posts",
		`SELECT `+postColumns+` FROM posts WHERE id = $1 AND NOT is_deleted`, id)
}

func (r *PostRepository) Create(ctx context.Context, userID, gameID int64, text string) (*model.Post, error) {
	return getOne[model.Post](ctx, r.db, "posts", `
		INSERT INTO posts (user_id, game_id, text)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns, userID, gameID, text)
}

func (r *PostRepository) UpdateText(ctx context.Context, id int64, text string) (*model.Post, error) {
	return getOne[model.Post](ctx, r.db, "posts", `
		UPDATE posts SET text = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+postColumns, id, text)
}

func (r *PostRepository) SoftDelete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "posts", `
		UPDATE posts SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted`, id)
}
