package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genre(g Genre) *Genre { return &g }

func TestGameGenre(t *testing.T) {
	g := Game{Genre1: GenreRPG}
	assert.Equal(t, "rpg", g.Genre())

	g.Genre2 = genre(GenreAction)
	assert.Equal(t, "rpg-action", g.Genre())

	g.Genre2 = genre("")
	assert.Equal(t, "rpg", g.Genre())
}

func TestGameDetails(t *testing.T) {
	series := "The Witcher"
	row := GameWithRelations{
		Game: Game{
			Base:        Base{ID: 3},
			Name:        "The Witcher 3",
			PictureURL:  "https://img/w3.png",
			Genre1:      GenreRPG,
			Genre2:      genre(GenreAdventure),
			ReleaseYear: 2015,
		},
		DeveloperName: "CD Projekt Red",
		PublisherName: "CD Projekt",
		SeriesName:    &series,
	}

	d := row.Details()
	assert.Equal(t, GameDetails{
		ID:          3,
		Name:        "The Witcher 3",
		Publisher:   "CD Projekt",
		Developer:   "CD Projekt Red",
		Series:      "The Witcher",
		ReleaseYear: 2015,
		PictureURL:  "https://img/w3.png",
		Genre:       "rpg-adventure",
	}, d)

	row.SeriesName = nil
	assert.Equal(t, "", row.Details().Series)
}

func validGamePayload() GamePayload {
	return GamePayload{
		Name:        "Hades",
		PictureURL:  "https://img/hades.png",
		Genre1:      "action",
		Genre2:      "rpg",
		DeveloperID: 1,
		PublisherID: 1,
		ReleaseYear: 2020,
	}
}

func TestGamePayloadValidate(t *testing.T) {
	p := validGamePayload()
	require.NoError(t, p.Validate())
	assert.Equal(t, GenreRPG, *p.Genre2Value())

	p.Genre2 = ""
	assert.Nil(t, p.Genre2Value())

	p = validGamePayload()
	p.Genre2 = "action"
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(p.Validate(), &verrs), "same genre twice")

	p = validGamePayload()
	p.Genre1 = "puzzle"
	assert.Error(t, p.Validate())
}

func TestGamePayloadReleaseYear(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p := validGamePayload()

	p.ReleaseYear = 1949
	var custom validation.CustomValidationErrors
	require.True(t, errors.As(p.validateReleaseYear(now), &custom))
	assert.Equal(t, "release_year", custom[0].Field)

	p.ReleaseYear = 2027
	assert.NoError(t, p.validateReleaseYear(now))

	p.ReleaseYear = 2028
	assert.Error(t, p.validateReleaseYear(now))
}

func TestScoreUnmarshal(t *testing.T) {
	var body struct {
		Rating Score `json:"rating"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"rating": 7}`), &body))
	assert.Equal(t, Score(7), body.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating": "9"}`), &body))
	assert.Equal(t, Score(9), body.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating": null}`), &body))
	assert.Equal(t, Score(0), body.Rating)

	assert.Error(t, json.Unmarshal([]byte(`{"rating": "nine"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"rating": 7.5}`), &body))
}

func TestRatingPayloadBounds(t *testing.T) {
	p := CreateRatingPayload{GameID: 1, Rating: 10}
	assert.NoError(t, p.Validate())

	p.Rating = 11
	assert.Error(t, p.Validate())

	p.Rating = 0
	assert.Error(t, p.Validate())
}

func TestRespondPayload(t *testing.T) {
	p := RespondPayload{PostID: 4, Response: ResponseDislike}
	assert.NoError(t, p.Validate())

	p.Response = "meh"
	assert.Error(t, p.Validate())
}

func TestUserPermissions(t *testing.T) {
	var anon *User
	assert.False(t, anon.CanModify(1))
	assert.Equal(t, int64(0), anon.UserID())

	owner := &User{ID: 1}
	assert.True(t, owner.CanModify(1))
	assert.False(t, owner.CanModify(2))

	admin := &User{ID: 9, IsSuperuser: true}
	assert.True(t, admin.CanModify(2))
}

func TestSignupPayload(t *testing.T) {
	p := SignupPayload{Username: "gamer42", Email: "g@example.com", Password: "longenough"}
	assert.NoError(t, p.Validate())

	p.Password = "short"
	assert.Error(t, p.Validate())

	p = SignupPayload{Username: "bad name", Email: "g@example.com", Password: "longenough"}
	assert.Error(t, p.Validate())
}

func TestSignupPayloadPasswordBytes(t *testing.T) {
	p := SignupPayload{Username: "gamer42", Email: "g@example.com", Password: strings.Repeat("a", MaxPasswordBytes)}
	assert.NoError(t, p.Validate())

	p.Password = strings.Repeat("a", 100)
	var custom validation.CustomValidationErrors
	require.True(t, errors.As(p.Validate(), &custom))
	assert.Equal(t, "password", custom[0].Field)

	// 30 runes, 90 bytes
	p.Password = strings.Repeat("é", 30) + strings.Repeat("ü", 15)
	assert.Error(t, p.Validate())
}
