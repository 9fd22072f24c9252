package service

import (
	"context"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/rs/zerolog"
)

type CompanyStore interface {
	List(ctx context.Context) ([]model.Company, error)
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	Create(ctx context.Context, name string) (*model.Company, error)
	Update(ctx context.Context, id int64, name string) (*model.Company, error)
	Delete(ctx context.Context, id int64) error
}

type SeriesStore interface {
	List(ctx context.Context) ([]model.Series, error)
	GetByID(ctx context.Context, id int64) (*model.Series, error)
	Create(ctx context.Context, name string) (*model.Series, error)
	Update(ctx context.Context, id int64, name string) (*model.Series, error)
	Delete(ctx context.Context, id int64) error
}

type GameStore interface {
	ListActive(ctx context.Context) ([]model.Game, error)
	GetDetails(ctx context.Context, id int64) (*model.GameWithRelations, error)
	Create(ctx context.Context, p model.GamePayload) (*model.Game, error)
	Update(ctx context.Context, id int64, p model.GamePayload) (*model.Game, error)
	SoftDelete(ctx context.Context, id int64) error
}

// CatalogService manages companies, series and games. Reads are public,
// writes are reserved to superusers.
type CatalogService struct {
	companies CompanyStore
	series    SeriesStore
	games     GameStore
	logger    *zerolog.Logger
}

func NewCatalogService(companies CompanyStore, series SeriesStore, games GameStore, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		companies: companies,
		series:    series,
		games:     games,
		logger:    logger,
	}
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.companies.List(ctx)
}

func (s *CatalogService) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *CatalogService) CreateCompany(ctx context.Context, actor *model.User, payload *model.NamePayload) (*model.Company, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}
	return s.companies.Create(ctx, payload.Name)
}

func (s *CatalogService) UpdateCompany(ctx context.Context, actor *model.User, payload *model.UpdateNamePayload) (*model.Company, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, payload.ID, payload.Name)
}

// DeleteCompany removes a company no game refers to.
func (s *CatalogService) DeleteCompany(ctx context.Context, actor *model.User, id int64) error {
	if err := requireSuperuser(actor); err != nil {
		return err
	}
	return s.companies.Delete(ctx, id)
}

func (s *CatalogService) ListSeries(ctx context.Context) ([]model.Series, error) {
	return s.series.List(ctx)
}

func (s *CatalogService) GetSeries(ctx context.Context, id int64) (*model.Series, error) {
	return s.series.GetByID(ctx, id)
}

func (s *CatalogService) CreateSeries(ctx context.Context, actor *model.User, payload *model.NamePayload) (*model.Series, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}
	return s.series.Create(ctx, payload.Name)
}

func (s *CatalogService) UpdateSeries(ctx context.Context, actor *model.User, payload *model.UpdateNamePayload) (*model.Series, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}
	return s.series.Update(ctx, payload.ID, payload.Name)
}

func (s *CatalogService) DeleteSeries(ctx context.Context, actor *model.User, id int64) error {
	if err := requireSuperuser(actor); err != nil {
		return err
	}
	return s.series.Delete(ctx, id)
}

// ListGames returns every game that has not been deleted.
func (s *CatalogService) ListGames(ctx context.Context) ([]model.Game, error) {
	return s.games.ListActive(ctx)
}

// GetGame returns the detail view of an active game.
func (s *CatalogService) GetGame(ctx context.Context, id int64) (*model.GameDetails, error) {
	game, err := s.games.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	details := game.Details()
	return &details, nil
}

func (s *CatalogService) CreateGame(ctx context.Context, actor *model.User, payload *model.GamePayload) (*model.Game, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}

	game, err := s.games.Create(ctx, *payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("game_id", game.ID).Str("name", game.Name).Msg("game created")
	return game, nil
}

func (s *CatalogService) UpdateGame(ctx context.Context, actor *model.User, payload *model.UpdateGamePayload) (*model.Game, error) {
	if err := requireSuperuser(actor); err != nil {
		return nil, err
	}
	return s.games.Update(ctx, payload.ID, payload.GamePayload)
}

// DeleteGame hides the game; its ratings and posts stay in place.
func (s *CatalogService) DeleteGame(ctx context.Context, actor *model.User, id int64) error {
	if err := requireSuperuser(actor); err != nil {
		return err
	}

	if err := s.games.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("game_id", id).Int64("deleted_by", actor.ID).Msg("game deleted")
	return nil
}
