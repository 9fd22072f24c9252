package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const commentColumns = `id, post_id, user_id, text, is_deleted, created_at, updated_at`

type CommentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByPost returns the active comments of a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.CommentListItem, error) {
	return getMany[model.CommentListItem](ctx, r.db, "comments", `
		SELECT c.id, c.post_id, u.username, c.text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND NOT c.is_deleted
		ORDER BY c.created_at, c.id`, postID)
}

func (r *CommentRepository) GetActive(ctx context.Context, id int64) (*model.Comment, error) {
	return getOne[model.Comment](ctx, r.db, "comments",
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND NOT is_deleted`, id)
}

func (r *CommentRepository) Create(ctx context.Context, userID, postID int64, text string) (*model.Comment, error) {
	return getOne[model.Comment](ctx, r.db, "comments", `
		INSERT INTO comments (user_id, post_id, text)
		VALUES ($1, $2, $3)
		RETURNING `+commentColumns, userID, postID, text)
}

func (r *CommentRepository) UpdateText(ctx context.Context, id int64, text string) (*model.Comment, error) {
	return getOne[model.Comment](ctx, r.db, "comments", `
		UPDATE comments SET text = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+commentColumns, id, text)
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "comments", `
		UPDATE comments SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT is_deleted`, id)
}
