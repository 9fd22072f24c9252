package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// MinScore and MaxScore bound a rating.
const (
	MinScore = 1
	MaxScore = 10
)

// Rating is one user's score for a game.
type Rating struct {
	Base
	UserID    int64 `json:"user" db:"user_id"`
	GameID    int64 `json:"game" db:"game_id"`
	Score     int   `json:"score" db:"score"`
	IsDeleted bool  `json:"is_deleted" db:"is_deleted"`
}

// RatingAggregate is the average and count of a game's active ratings.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// RatingSummary is returned by GET /games/:id/ratings. User fields are 0
// when the caller has no active rating.
type RatingSummary struct {
	AvgRating       float64 `json:"avg_rating"`
	RatingCount     int64   `json:"rating_count"`
	UserRatingScore int     `json:"user_rating_score"`
	UserRatingID    int64   `json:"user_rating_id"`
}

// Score accepts both 7 and "7" in JSON bodies; form clients send digits
// as strings.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("rating must be a whole number")
	}
	*s = Score(value)
	return nil
}

// CreateRatingPayload rates the game at :id.
type CreateRatingPayload struct {
	GameID int64 `json:"-" param:"id" validate:"required,gt=0"`
	Rating Score `json:"rating" validate:"required,gte=1,lte=10"`
}

func (p *CreateRatingPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateRatingPayload changes the score of the rating at :id.
type UpdateRatingPayload struct {
	ID     int64 `json:"-" param:"id" validate:"required,gt=0"`
	Rating Score `json:"rating" validate:"required,gte=1,lte=10"`
}

func (p *UpdateRatingPayload) Validate() error {
	return validation.Struct(p)
}
