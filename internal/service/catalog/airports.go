package catalog

import (
	"context"
	"io"

	"github.com/Domenick1991/airport-service/internal/cache"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
	"go.uber.org/zap"
)

type AirportUseCase interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, r io.Reader) (*domain.Airport, error)
}

type AirportService struct {
	repo   repository.AirportRepository
	cache  Cache
	images ImageStore
	log    *zap.Logger
}

func NewAirportService(repo repository.AirportRepository, cache Cache, images ImageStore, log *zap.Logger) *AirportService {
	return &AirportService{repo: repo, cache: cache, images: images, log: log}
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		var cached []domain.Airport
		ok, err := s.cache.GetJSON(ctx, cache.AirportsKey, &cached)
		if err != nil {
			s.log.Warn("read airports cache", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	airports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.AirportsKey, airports); err != nil {
			s.log.Warn("write airports cache", zap.Error(err))
		}
	}
	return airports, nil
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirportService) Create(ctx context.Context, airport *domain.Airport) error {
	if err := validation.Struct(airport); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, airport); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirportService) Update(ctx context.Context, airport *domain.Airport) error {
	if err := validation.Struct(airport); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, airport); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirportService) Delete(ctx context.Context, id int64) error {
	airport, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.removeImage(airport.Image)
	return nil
}

// UploadImage replaces the airport image. The previous file is removed once
// the new one is stored.
func (s *AirportService) UploadImage(ctx context.Context, id int64, r io.Reader) (*domain.Airport, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.SaveImage("airports", current.Name, r)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetImage(ctx, id, url)
	if err != nil {
		s.removeImage(&url)
		return nil, err
	}

	s.invalidate(ctx)
	s.removeImage(current.Image)
	return updated, nil
}

func (s *AirportService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.AirportsKey); err != nil {
		s.log.Warn("invalidate airports cache", zap.Error(err))
	}
}

func (s *AirportService) removeImage(url *string) {
	if url == nil || *url == "" || s.images == nil {
		return
	}
	if err := s.images.Remove(*url); err != nil {
		s.log.Warn("remove airport image", zap.String("url", *url), zap.Error(err))
	}
}

var _ AirportUseCase = (*AirportService)(nil)
