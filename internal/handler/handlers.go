package handler

import (
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/deppfellow/gs-backend/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Auth    *AuthHandler
	Company *CompanyHandler
	Series  *SeriesHandler
	Game    *GameHandler
	Rating  *RatingHandler
	Post    *PostHandler
	Comment *CommentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),
		Company: NewCompanyHandler(s, services.Catalog),
		Series:  NewSeriesHandler(s, services.Catalog),
		Game:    NewGameHandler(s, services.Catalog),
		Rating:  NewRatingHandler(s, services.Rating),
		Post:    NewPostHandler(s, services.Post, services.Response),
		Comment: NewCommentHandler(s, services.Comment),
	}
}
