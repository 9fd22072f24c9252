package model

import "github.com/deppfellow/gs-backend/internal/validation"

// ResponseType is a reaction to a post.
type ResponseType string

const (
	ResponseLike    ResponseType = "like"
	ResponseDislike ResponseType = "dislike"
)

// PostResponse is a like or dislike. A user has at most one active
// response per post.
type PostResponse struct {
	Base
	UserID    int64        `json:"user" db:"user_id"`
	PostID    int64        `json:"post" db:"post_id"`
	Response  ResponseType `json:"response" db:"response"`
	IsDeleted bool         `json:"is_deleted" db:"is_deleted"`
}

// ResponseCounts is the number of active likes and dislikes of a post.
type ResponseCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ResponseSummary is returned by GET and POST /posts/:id/responses.
// UserResponse is "" when the caller has not reacted.
type ResponseSummary struct {
	Likes          int64        `json:"likes"`
	Dislikes       int64        `json:"dislikes"`
	UserResponse   ResponseType `json:"user_response"`
	UserResponseID int64        `json:"user_response_id"`
}

// RespondPayload likes or dislikes the post at :id. Sending the same
// reaction twice withdraws it.
type RespondPayload struct {
	PostID   int64        `json:"-" param:"id" validate:"required,gt=0"`
	Response ResponseType `json:"response" validate:"required,oneof=like dislike"`
}

func (p *RespondPayload) Validate() error {
	return validation.Struct(p)
}
