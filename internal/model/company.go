package model

import "github.com/deppfellow/gs-backend/internal/validation"

// Company is a game developer or publisher.
type Company struct {
	Base
	Name string `json:"name" db:"name"`
}

// Series groups related games. A game belongs to at most one series.
type Series struct {
	Base
	Name string `json:"name" db:"name"`
}

// NamePayload creates a company or series.
type NamePayload struct {
	Name string `json:"name" validate:"required,max=128"`
}

func (p *NamePayload) Validate() error {
	return validation.Struct(p)
}

// UpdateNamePayload renames the company or series addressed by :id.
type UpdateNamePayload struct {
	ID   int64  `json:"-" param:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,max=128"`
}

func (p *UpdateNamePayload) Validate() error {
	return validation.Struct(p)
}
