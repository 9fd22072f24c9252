package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// User is a registered account. Superusers manage the catalog and may
// edit or delete anyone's content.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	ExternalID   *string   `json:"-" db:"external_id"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CanModify reports whether u may change a resource owned by ownerID.
func (u *User) CanModify(ownerID int64) bool {
	if u == nil {
		return false
	}
	return u.IsSuperuser || u.ID == ownerID
}

// UserID returns the id of u, or 0 for anonymous callers.
func (u *User) UserID() int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

// SignupPayload registers a new account.
type SignupPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

func (p *SignupPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if len(p.Password) > MaxPasswordBytes {
		return validation.CustomValidationErrors{{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes),
		}}
	}
	return nil
}

// ObtainTokenPayload exchanges credentials for an API token.
type ObtainTokenPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (p *ObtainTokenPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateProfilePayload changes the caller's display names.
type UpdateProfilePayload struct {
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

func (p *UpdateProfilePayload) Validate() error {
	return validation.Struct(p)
}

// EmptyPayload is used by endpoints without input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}

// TokenResponse carries an API token.
type TokenResponse struct {
	Token string `json:"token"`
}
