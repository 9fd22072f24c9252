package handler

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type catalogService interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	CreateCompany(ctx context.Context, actor *model.User, payload *model.NamePayload) (*model.Company, error)
	UpdateCompany(ctx context.Context, actor *model.User, payload *model.UpdateNamePayload) (*model.Company, error)
	DeleteCompany(ctx context.Context, actor *model.User, id int64) error

	ListSeries(ctx context.Context) ([]model.Series, error)
	GetSeries(ctx context.Context, id int64) (*model.Series, error)
	CreateSeries(ctx context.Context, actor *model.User, payload *model.NamePayload) (*model.Series, error)
	UpdateSeries(ctx context.Context, actor *model.User, payload *model.UpdateNamePayload) (*model.Series, error)
	DeleteSeries(ctx context.Context, actor *model.User, id int64) error

	ListGames(ctx context.Context) ([]model.Game, error)
	GetGame(ctx context.Context, id int64) (*model.GameDetails, error)
	CreateGame(ctx context.Context, actor *model.User, payload *model.GamePayload) (*model.Game, error)
	UpdateGame(ctx context.Context, actor *model.User, payload *model.UpdateGamePayload) (*model.Game, error)
	DeleteGame(ctx context.Context, actor *model.User, id int64) error
}

// CompanyHandler serves /companies.
type CompanyHandler struct {
	Handler
	catalog catalogService
}

func NewCompanyHandler(s *server.Server, catalog catalogService) *CompanyHandler {
	return &CompanyHandler{Handler: NewHandler(s), catalog: catalog}
}

func (h *CompanyHandler) List(c echo.Context, _ *model.EmptyPayload) ([]model.Company, error) {
	return h.catalog.ListCompanies(c.Request().Context())
}

func (h *CompanyHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Company, error) {
	return h.catalog.GetCompany(c.Request().Context(), payload.ID)
}

func (h *CompanyHandler) Create(c echo.Context, payload *model.NamePayload) (*model.Company, error) {
	return h.catalog.CreateCompany(c.Request().Context(), caller(c), payload)
}

func (h *CompanyHandler) Update(c echo.Context, payload *model.UpdateNamePayload) (*model.Company, error) {
	return h.catalog.UpdateCompany(c.Request().Context(), caller(c), payload)
}

func (h *CompanyHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.catalog.DeleteCompany(c.Request().Context(), caller(c), payload.ID)
}

// SeriesHandler serves /series.
type SeriesHandler struct {
	Handler
	catalog catalogService
}

func NewSeriesHandler(s *server.Server, catalog catalogService) *SeriesHandler {
	return &SeriesHandler{Handler: NewHandler(s), catalog: catalog}
}

func (h *SeriesHandler) List(c echo.Context, _ *model.EmptyPayload) ([]model.Series, error) {
	return h.catalog.ListSeries(c.Request().Context())
}

func (h *SeriesHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Series, error) {
	return h.catalog.GetSeries(c.Request().Context(), payload.ID)
}

func (h *SeriesHandler) Create(c echo.Context, payload *model.NamePayload) (*model.Series, error) {
	return h.catalog.CreateSeries(c.Request().Context(), caller(c), payload)
}

func (h *SeriesHandler) Update(c echo.Context, payload *model.UpdateNamePayload) (*model.Series, error) {
	return h.catalog.UpdateSeries(c.Request().Context(), caller(c), payload)
}

func (h *SeriesHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.catalog.DeleteSeries(c.Request().Context(), caller(c), payload.ID)
}

// GameHandler serves /games.
type GameHandler struct {
	Handler
	catalog catalogService
}

func NewGameHandler(s *server.Server, catalog catalogService) *GameHandler {
	return &GameHandler{Handler: NewHandler(s), catalog: catalog}
}

func (h *GameHandler) List(c echo.Context, _ *model.EmptyPayload) ([]model.Game, error) {
	return h.catalog.ListGames(c.Request().Context())
}

func (h *GameHandler) Get(c echo.Context, payload *model.IDPayload) (*model.GameDetails, error) {
	return h.catalog.GetGame(c.Request().Context(), payload.ID)
}

func (h *GameHandler) Create(c echo.Context, payload *model.GamePayload) (*model.Game, error) {
	return h.catalog.CreateGame(c.Request().Context(), caller(c), payload)
}

func (h *GameHandler) Update(c echo.Context, payload *model.UpdateGamePayload) (*model.Game, error) {
	return h.catalog.UpdateGame(c.Request().Context(), caller(c), payload)
}

func (h *GameHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	return h.catalog.DeleteGame(c.Request().Context(), caller(c), payload.ID)
}
