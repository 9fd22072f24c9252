package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/gs-backend/internal/database"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const postResponseColumns = `id, user_id, post_id, response, is_deleted, created_at, updated_at`

// PostResponseStore holds the post response queries that may run inside a
// transaction started by PostResponseRepository.Transact.
type PostResponseStore interface {
	LockPost(ctx context.Context, postID int64) error
	Counts(ctx context.Context, postID int64) (*model.ResponseCounts, error)
	ActiveForUser(ctx context.Context, userID, postID int64) ([]model.PostResponse, error)
	SoftDeleteActiveForUser(ctx context.Context, userID, postID int64) error
	Create(ctx context.Context, userID, postID int64, response model.ResponseType) (*model.PostResponse, error)
}

type PostResponseRepository struct {
	db       Querier
	database *database.Database
}

func NewPostResponseRepository(db *database.Database) *PostResponseRepository {
	return &PostResponseRepository{db: db.Pool, database: db}
}

// Transact runs fn with a store bound to a single transaction.
func (r *PostResponseRepository) Transact(ctx context.Context, fn func(store PostResponseStore) error) error {
	return r.database.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(&PostResponseRepository{db: tx, database: r.database})
	})
}

// LockPost takes a row lock on an active post, serializing concurrent
// reactions to it until the transaction ends.
func (r *PostResponseRepository) LockPost(ctx context.Context, postID int64) error {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM posts WHERE id = $1 AND NOT is_deleted FOR UPDATE`, postID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.WrapNoRows("posts", err)
	}
	return err
}

// Counts returns the active likes and dislikes of a post.
func (r *PostResponseRepository) Counts(ctx context.Context, postID int64) (*model.ResponseCounts, error) {
	counts := &model.ResponseCounts{}
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE response = 'like'),
			COUNT(*) FILTER (WHERE response = 'dislike')
		FROM post_responses
		WHERE post_id = $1 AND NOT is_deleted`, postID,
	).Scan(&counts.Likes, &counts.Dislikes)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// ActiveForUser returns the user's active responses to a post, newest
// first. Outside of legacy data there is at most one.
func (r *PostResponseRepository) ActiveForUser(ctx context.Context, userID, postID int64) ([]model.PostResponse, error) {
	return getMany[model.PostResponse](ctx, r.db, "post_responses", `
		SELECT `+postResponseColumns+` FROM post_responses
		WHERE user_id = $1 AND post_id = $2 AND NOT is_deleted
		ORDER BY id DESC`, userID, postID)
}

func (r *PostResponseRepository) SoftDeleteActiveForUser(ctx context.Context, userID, postID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE post_responses SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND post_id = $2 AND NOT is_deleted`, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to update post_responses: %w", err)
	}
	return nil
}

func (r *PostResponseRepository) Create(ctx context.Context, userID, postID int64, response model.ResponseType) (*model.PostResponse, error) {
	return getOne[model.PostResponse](ctx, r.db, "post_responses", `
		INSERT INTO post_responses (user_id, post_id, response)
		VALUES ($1, $2, $3)
		RETURNING `+postResponseColumns, userID, postID, response)
}
