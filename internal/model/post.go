package model

import (
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// MaxTextLength bounds posts and comments.
const MaxTextLength = 5000

// Post is a discussion entry attached to a game.
type Post struct {
	Base
	UserID    int64  `json:"user" db:"user_id"`
	GameID    int64  `json:"game" db:"game_id"`
	Text      string `json:"text" db:"text"`
	IsDeleted bool   `json:"is_deleted" db:"is_deleted"`
}

// PostListItem is a post as listed under its game, with names instead of
// ids.
type PostListItem struct {
	ID        int64     `json:"id" db:"id"`
	User      string    `json:"user" db:"username"`
	Game      string    `json:"game" db:"game_name"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreatePostPayload posts to the game at :id.
type CreatePostPayload struct {
	GameID int64  `json:"-" param:"id" validate:"required,gt=0"`
	Text   string `json:"text" validate:"required,max=5000"`
}

func (p *CreatePostPayload) Validate() error {
	return validation.Struct(p)
}

// UpdatePostPayload replaces the text of the post at :id.
type UpdatePostPayload struct {
	ID   int64  `json:"-" param:"id" validate:"required,gt=0"`
	Text string `json:"text" validate:"required,max=5000"`
}

func (p *UpdatePostPayload) Validate() error {
	return validation.Struct(p)
}
