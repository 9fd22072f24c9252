package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/gs-backend/internal/validation"
)

// Genre is one of the fixed game genres.
type Genre string

const (
	GenreAction     Genre = "action"
	GenreAdventure  Genre = "adventure"
	GenreFighting   Genre = "fighting"
	GenreRPG        Genre = "rpg"
	GenreRacing     Genre = "racing"
	GenreShooter    Genre = "shooter"
	GenreSimulation Genre = "simulation"
	GenreSports     Genre = "sports"
	GenreOther      Genre = "other"
)

// MinReleaseYear is the earliest accepted release year.
const MinReleaseYear = 1950

// MaxReleaseYear is the latest accepted release year: next year, so
// announced titles can be added.
func MaxReleaseYear(now time.Time) int {
	return now.Year() + 1
}

// Game is a catalog entry. Deleting a game only sets IsDeleted.
type Game struct {
	Base
	Name        string `json:"name" db:"name"`
	PictureURL  string `json:"picture_url" db:"picture_url"`
	Genre1      Genre  `json:"genre_1" db:"genre_1"`
	Genre2      *Genre `json:"genre_2" db:"genre_2"`
	DeveloperID int64  `json:"developer" db:"developer_id"`
	PublisherID int64  `json:"publisher" db:"publisher_id"`
	SeriesID    *int64 `json:"series" db:"series_id"`
	ReleaseYear int    `json:"release_year" db:"release_year"`
	IsDeleted   bool   `json:"is_deleted" db:"is_deleted"`
}

// Genre renders the genre pair as "rpg" or "action-adventure".
func (g *Game) Genre() string {
	if g.Genre2 != nil && *g.Genre2 != "" {
		return fmt.Sprintf("%s-%s", g.Genre1, *g.Genre2)
	}
	return string(g.Genre1)
}

// GameWithRelations is a game joined with the names of its companies and
// series.
type GameWithRelations struct {
	Game
	DeveloperName string  `db:"developer_name"`
	PublisherName string  `db:"publisher_name"`
	SeriesName    *string `db:"series_name"`
}

// GameDetails is the single-game response: related entities by name and
// a flattened genre.
type GameDetails struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Publisher   string `json:"publisher"`
	Developer   string `json:"developer"`
	Series      string `json:"series"`
	ReleaseYear int    `json:"release_year"`
	PictureURL  string `json:"picture_url"`
	Genre       string `json:"genre"`
}

// Details builds the response shape; a game without series reports "".
func (g *GameWithRelations) Details() GameDetails {
	series := ""
	if g.SeriesName != nil {
		series = *g.SeriesName
	}
	return GameDetails{
		ID:          g.ID,
		Name:        g.Name,
		Publisher:   g.PublisherName,
		Developer:   g.DeveloperName,
		Series:      series,
		ReleaseYear: g.ReleaseYear,
		PictureURL:  g.PictureURL,
		Genre:       g.Genre(),
	}
}

// GamePayload carries every writable game field. Related entities are
// referenced by id.
type GamePayload struct {
	Name        string `json:"name" validate:"required,max=128"`
	PictureURL  string `json:"picture_url" validate:"required,max=128"`
	Genre1      string `json:"genre_1" validate:"required,oneof=action adventure fighting rpg racing shooter simulation sports other"`
	Genre2      string `json:"genre_2" validate:"omitempty,oneof=action adventure fighting rpg racing shooter simulation sports other,nefield=Genre1"`
	DeveloperID int64  `json:"developer" validate:"required,gt=0"`
	PublisherID int64  `json:"publisher" validate:"required,gt=0"`
	SeriesID    *int64 `json:"series" validate:"omitempty,gt=0"`
	ReleaseYear int    `json:"release_year" validate:"required"`
}

func (p *GamePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return p.validateReleaseYear(time.Now())
}

func (p *GamePayload) validateReleaseYear(now time.Time) error {
	if p.ReleaseYear < MinReleaseYear || p.ReleaseYear > MaxReleaseYear(now) {
		return validation.CustomValidationErrors{{
			Field:   "release_year",
			Message: fmt.Sprintf("must be between %d and %d", MinReleaseYear, MaxReleaseYear(now)),
		}}
	}
	return nil
}

// Genre2Value returns the optional second genre, nil when empty.
func (p *GamePayload) Genre2Value() *Genre {
	if p.Genre2 == "" {
		return nil
	}
	g := Genre(p.Genre2)
	return &g
}

// UpdateGamePayload replaces every writable field of the game at :id.
type UpdateGamePayload struct {
	ID int64 `json:"-" param:"id" validate:"required,gt=0"`
	GamePayload
}

func (p *UpdateGamePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return p.validateReleaseYear(time.Now())
}
