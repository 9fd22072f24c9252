package repository

import (
	"github.com/deppfellow/gs-backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User         *UserRepository
	Token        *TokenRepository
	Company      *CompanyRepository
	Series       *SeriesRepository
	Game         *GameRepository
	Rating       *RatingRepository
	Post         *PostRepository
	PostResponse *PostResponseRepository
	Comment      *CommentRepository
}

// NewRepositories builds every repository on the shared connection pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		User:         NewUserRepository(pool),
		Token:        NewTokenRepository(pool),
		Company:      NewCompanyRepository(pool),
		Series:       NewSeriesRepository(pool),
		Game:         NewGameRepository(pool),
		Rating:       NewRatingRepository(pool),
		Post:         NewPostRepository(pool),
		PostResponse: NewPostResponseRepository(s.DB),
		Comment:      NewCommentRepository(pool),
	}
}
