package model

import (
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// Comment is a reply to a post.
type Comment struct {
	Base
	PostID    int64  `json:"post" db:"post_id"`
	UserID    int64  `json:"user" db:"user_id"`
	Text      string `json:"text" db:"text"`
	IsDeleted bool   `json:"is_deleted" db:"is_deleted"`
}

// CommentListItem is a comment as listed under its post.
type CommentListItem struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post" db:"post_id"`
	User      string    `json:"user" db:"username"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCommentPayload comments on the post at :id.
type CreateCommentPayload struct {
	PostID int64  `json:"-" param:"id" validate:"required,gt=0"`
	Text   string `json:"text" validate:"required,max=5000"`
}

func (p *CreateCommentPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateCommentPayload replaces the text of the comment at :id.
type UpdateCommentPayload struct {
	ID   int64  `json:"-" param:"id" validate:"required,gt=0"`
	Text string `json:"text" validate:"required,max=5000"`
}

func (p *UpdateCommentPayload) Validate() error {
	return validation.Struct(p)
}
