package catalog

import (
	"context"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
)

type RouteUseCase interface {
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.RouteListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.RouteDetail, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type RouteService struct {
	repo repository.RouteRepository
}

func NewRouteService(repo repository.RouteRepository) *RouteService {
	return &RouteService{repo: repo}
}

func (s *RouteService) List(ctx context.Context, filter domain.RouteFilter) ([]domain.RouteListItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *RouteService) GetByID(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RouteService) Create(ctx context.Context, route *domain.Route) error {
	if err := validation.Struct(route); err != nil {
		return err
	}
	return s.repo.Create(ctx, route)
}

func (s *RouteService) Update(ctx context.Context, route *domain.Route) error {
	if err := validation.Struct(route); err != nil {
		return err
	}
	return s.repo.Update(ctx, route)
}

func (s *RouteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validateRoute allows source == destination.
var _ RouteUseCase = (*RouteService)(nil)
