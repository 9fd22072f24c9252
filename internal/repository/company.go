package repository

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
)

const namedColumns = `id, name, created_at, updated_at`

type CompanyRepository struct {
	db Querier
}

func NewCompanyRepository(db Querier) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	return getMany[model.Company](ctx, r.db, "companies",
		`SELECT `+namedColumns+` FROM companies ORDER BY id`)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	return getOne[model.Company](ctx, r.db, "companies",
		`SELECT `+namedColumns+` FROM companies WHERE id = $1`, id)
}

func (r *CompanyRepository) Create(ctx context.Context, name string) (*model.Company, error) {
	return getOne[model.Company](ctx, r.db, "companies",
		`INSERT INTO companies (name) VALUES ($1) RETURNING `+namedColumns, name)
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, name string) (*model.Company, error) {
	return getOne[model.Company](ctx, r.db, "companies", `
		UPDATE companies SET name = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+namedColumns, id, name)
}

// Delete removes the company. Postgres refuses while a game references it.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "companies", `DELETE FROM companies WHERE id = $1`, id)
}
