package service

import (
	"github.com/deppfellow/gs-backend/internal/lib/cache"
	"github.com/deppfellow/gs-backend/internal/lib/job"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/deppfellow/gs-backend/internal/server"
)

type Services struct {
	Auth     *AuthService
	Catalog  *CatalogService
	Rating   *RatingService
	Post     *PostService
	Response *ResponseService
	Comment  *CommentService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cfg := s.Config
	summaries := cache.NewSummaryCache(s.Redis, cfg.Cache.SummaryTTL, s.Logger)

	return &Services{
		Auth:     NewAuthService(repos.User, repos.Token, s.Job, cfg.Auth.ClerkSecretKey, cfg.Auth.BcryptCost, s.Logger),
		Catalog:  NewCatalogService(repos.Company, repos.Series, repos.Game, s.Logger),
		Rating:   NewRatingService(repos.Rating, repos.Game, summaries, s.Logger),
		Post:     NewPostService(repos.Post, repos.Game, s.Logger),
		Response: NewResponseService(repos.PostResponse, repos.Post, summaries, s.Logger),
		Comment:  NewCommentService(repos.Comment, repos.Post, s.Logger),
		Job:      s.Job,
	}, nil
}
