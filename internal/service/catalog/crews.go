package catalog

import (
	"context"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
)

type CrewUseCase interface {
	List(ctx context.Context) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type CrewService struct {
	repo repository.CrewRepository
}

func NewCrewService(repo repository.CrewRepository) *CrewService {
	return &CrewService{repo: repo}
}

func (s *CrewService) List(ctx context.Context) ([]domain.Crew, error) {
	return s.repo.List(ctx)
}

func (s *CrewService) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CrewService) Create(ctx context.Context, crew *domain.Crew) error {
	if err := validation.Struct(crew); err != nil {
		return err
	}
	return s.repo.Create(ctx, crew)
}

func (s *CrewService) Update(ctx context.Context, crew *domain.Crew) error {
	if err := validation.Struct(crew); err != nil {
		return err
	}
	return s.repo.Update(ctx, crew)
}

func (s *CrewService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ CrewUseCase = (*CrewService)(nil)
