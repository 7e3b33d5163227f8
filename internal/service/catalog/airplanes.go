package catalog

import (
	"context"

	"github.com/Domenick1991/airport-service/internal/cache"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
	"go.uber.org/zap"
)

type AirplaneTypeUseCase interface {
	List(ctx context.Context) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, t *domain.AirplaneType) error
	Update(ctx context.Context, t *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneUseCase interface {
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.AirplaneListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneDetail, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneTypeService struct {
	repo  repository.AirplaneTypeRepository
	cache Cache
	log   *zap.Logger
}

func NewAirplaneTypeService(repo repository.AirplaneTypeRepository, cache Cache, log *zap.Logger) *AirplaneTypeService {
	return &AirplaneTypeService{repo: repo, cache: cache, log: log}
}

func (s *AirplaneTypeService) List(ctx context.Context) ([]domain.AirplaneType, error) {
	if s.cache != nil {
		var cached []domain.AirplaneType
		ok, err := s.cache.GetJSON(ctx, cache.AirplaneTypesKey, &cached)
		if err != nil {
			s.log.Warn("read airplane types cache", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.AirplaneTypesKey, types); err != nil {
			s.log.Warn("write airplane types cache", zap.Error(err))
		}
	}
	return types, nil
}

func (s *AirplaneTypeService) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirplaneTypeService) Create(ctx context.Context, t *domain.AirplaneType) error {
	if err := validation.Struct(t); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirplaneTypeService) Update(ctx context.Context, t *domain.AirplaneType) error {
	if err := validation.Struct(t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirplaneTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirplaneTypeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.AirplaneTypesKey); err != nil {
		s.log.Warn("invalidate airplane types cache", zap.Error(err))
	}
}

type AirplaneService struct {
	repo repository.AirplaneRepository
}

func NewAirplaneService(repo repository.AirplaneRepository) *AirplaneService {
	return &AirplaneService{repo: repo}
}

func (s *AirplaneService) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.AirplaneListItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *AirplaneService) GetByID(ctx context.Context, id int64) (*domain.AirplaneDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirplaneService) Create(ctx context.Context, airplane *domain.Airplane) error {
	if err := validation.Struct(airplane); err != nil {
		return err
	}
	return s.repo.Create(ctx, airplane)
}

// Update changes the layout too. A layout that would leave sold tickets
// outside its rows or seats is rejected by the repository.
func (s *AirplaneService) Update(ctx context.Context, airplane *domain.Airplane) error {
	if err := validation.Struct(airplane); err != nil {
		return err
	}
	return s.repo.Update(ctx, airplane)
}

func (s *AirplaneService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var (
	_ AirplaneTypeUseCase = (*AirplaneTypeService)(nil)
	_ AirplaneUseCase     = (*AirplaneService)(nil)
)
