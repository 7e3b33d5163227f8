package flights

import (
	"context"
	"errors"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error)
	Update(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error)
	Delete(ctx context.Context, id int64) error
}

// FlightService serves flights with live seat availability. Listings are read
// straight from storage so tickets_available always reflects committed orders.
type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightListItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error) {
	if err := validate(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, flight.ID)
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error) {
	if err := validate(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, flight.ID)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validate runs the tag rules, then the arrival-after-departure rule.
func validate(f *domain.Flight) error {
	verr := &domain.ValidationError{}
	if err := validation.Struct(f); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}
	if !f.DepartureTime.IsZero() && !f.ArrivalTime.IsZero() && !f.ArrivalTime.After(f.DepartureTime) {
		verr.Add("arrival_time", "arrival time must be after departure time")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

var _ FlightUseCase = (*FlightService)(nil)
