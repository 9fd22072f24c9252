// Package router builds the echo instance: global middleware, system
// routes and the versioned API.
package router

import (
	"net/http"

	"github.com/deppfellow/gs-backend/internal/handler"
	"github.com/deppfellow/gs-backend/internal/middleware"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/deppfellow/gs-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter wires handlers and middleware. Order matters: the request id
// and New Relic transaction exist before the request logger is built,
// and authentication runs last so it can extend that logger.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Collect(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
		middlewares.Auth.Authenticate,
	)

	registerSystemRoutes(router, h, middlewares)

	v1 := router.Group("/api/v1")
	registerV1Routes(v1, h, middlewares)

	return router
}

func registerV1Routes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	auth := h.Auth
	g.POST("/signup", handler.Handle(auth.Handler, auth.Signup, http.StatusCreated))
	g.POST("/auth/token", handler.Handle(auth.Handler, auth.ObtainToken, http.StatusOK))

	me := g.Group("/me", m.Auth.RequireAuth)
	me.GET("", handler.Handle(auth.Handler, auth.Me, http.StatusOK))
	me.PUT("", handler.Handle(auth.Handler, auth.UpdateMe, http.StatusOK))

	companies := h.Company
	g.GET("/companies", handler.Handle(companies.Handler, companies.List, http.StatusOK))
	g.POST("/companies", handler.Handle(companies.Handler, companies.Create, http.StatusCreated))
	g.GET("/companies/:id", handler.Handle(companies.Handler, companies.Get, http.StatusOK))
	g.PUT("/companies/:id", handler.Handle(companies.Handler, companies.Update, http.StatusOK))
	g.DELETE("/companies/:id", handler.HandleNoContent(companies.Handler, companies.Delete, http.StatusNoContent))

	series := h.Series
	g.GET("/series", handler.Handle(series.Handler, series.List, http.StatusOK))
	g.POST("/series", handler.Handle(series.Handler, series.Create, http.StatusCreated))
	g.GET("/series/:id", handler.Handle(series.Handler, series.Get, http.StatusOK))
	g.PUT("/series/:id", handler.Handle(series.Handler, series.Update, http.StatusOK))
	g.DELETE("/series/:id", handler.HandleNoContent(series.Handler, series.Delete, http.StatusNoContent))

	games := h.Game
	g.GET("/games", handler.Handle(games.Handler, games.List, http.StatusOK))
	g.POST("/games", handler.Handle(games.Handler, games.Create, http.StatusCreated))
	g.GET("/games/:id", handler.Handle(games.Handler, games.Get, http.StatusOK))
	g.PUT("/games/:id", handler.Handle(games.Handler, games.Update, http.StatusOK))
	g.DELETE("/games/:id", handler.HandleNoContent(games.Handler, games.Delete, http.StatusNoContent))

	ratings := h.Rating
	g.GET("/games/:id/ratings", handler.Handle(ratings.Handler, ratings.Summary, http.StatusOK))
	g.POST("/games/:id/ratings", handler.Handle(ratings.Handler, ratings.Create, http.StatusCreated))
	g.GET("/ratings/:id", handler.Handle(ratings.Handler, ratings.Get, http.StatusOK))
	g.PUT("/ratings/:id", handler.HandleNoContent(ratings.Handler, ratings.Update, http.StatusNoContent))
	g.DELETE("/ratings/:id", handler.HandleNoContent(ratings.Handler, ratings.Delete, http.StatusNoContent))

	posts := h.Post
	g.GET("/games/:id/posts", handler.Handle(posts.Handler, posts.ListByGame, http.StatusOK))
	g.POST("/games/:id/posts", handler.Handle(posts.Handler, posts.Create, http.StatusCreated))
	g.GET("/posts/:id", handler.Handle(posts.Handler, posts.Get, http.StatusOK))
	g.PUT("/posts/:id", handler.Handle(posts.Handler, posts.Update, http.StatusOK))
	g.DELETE("/posts/:id", handler.HandleNoContent(posts.Handler, posts.Delete, http.StatusNoContent))
	g.GET("/posts/:id/responses", handler.Handle(posts.Handler, posts.Responses, http.StatusOK))
	g.POST("/posts/:id/responses", handler.Handle(posts.Handler, posts.Respond, http.StatusCreated))

	comments := h.Comment
	g.GET("/posts/:id/comments", handler.Handle(comments.Handler, comments.ListByPost, http.StatusOK))
	g.POST("/posts/:id/comments", handler.Handle(comments.Handler, comments.Create, http.StatusCreated))
	g.GET("/comments/:id", handler.Handle(comments.Handler, comments.Get, http.StatusOK))
	g.PUT("/comments/:id", handler.Handle(comments.Handler, comments.Update, http.StatusOK))
	g.DELETE("/comments/:id", handler.HandleNoContent(comments.Handler, comments.Delete, http.StatusNoContent))
}
