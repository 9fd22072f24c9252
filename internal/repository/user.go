package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const userColumns = `id, username, email, first_name, last_name, password_hash,
	is_superuser, is_active, external_id, date_joined, updated_at`

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserParams holds the columns set when a user is created.
type CreateUserParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsSuperuser  bool
	ExternalID   *string
}

func (r *UserRepository) Create(ctx context.Context, p CreateUserParams) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users", `
		INSERT INTO users (username, email, first_name, last_name, password_hash, is_superuser, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		p.Username, p.Email, p.FirstName, p.LastName, p.PasswordHash, p.IsSuperuser, p.ExternalID,
	)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users",
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users",
		`SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
}

// GetByToken resolves the owner of an API token.
func (r *UserRepository) GetByToken(ctx context.Context, key string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users", `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash,
			u.is_superuser, u.is_active, u.external_id, u.date_joined, u.updated_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1`, key)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users", `
		UPDATE users
		SET first_name = $2, last_name = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+userColumns,
		id, firstName, lastName,
	)
}

// SetSuperuser grants superuser rights and resets the password.
// Used by the createsuperuser command for an existing username.
func (r *UserRepository) SetSuperuser(ctx context.Context, id int64, passwordHash string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, "users", `
		UPDATE users
		SET is_superuser = TRUE, password_hash = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+userColumns,
		id, passwordHash,
	)
}
