// Package model defines the domain entities, the request payloads that
// create or change them, and the response shapes returned to clients.
package model

import (
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// Base holds the columns every table shares.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IDPayload addresses a single resource through the :id path parameter.
type IDPayload struct {
	ID int64 `json:"-" param:"id" validate:"required,gt=0"`
}

func (p *IDPayload) Validate() error {
	return validation.Struct(p)
}
