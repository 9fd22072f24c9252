package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

type TokenRepository struct {
	db Querier
}

func NewTokenRepository(db Querier) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetOrCreate returns the user's token, storing key as the new token when
// the user has none yet. An existing token is never replaced.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, key string) (*model.AuthToken, error) {
	return getOne[model.AuthToken](ctx, r.db, "auth_tokens", `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, user_id, created`,
		key, userID,
	)
}
