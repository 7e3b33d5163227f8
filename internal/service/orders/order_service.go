package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport-service/internal/boardingpass"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/kafka"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	Create(ctx context.Context, identity domain.Identity, specs []domain.TicketSpec) (*domain.Order, error)
	List(ctx context.Context, identity domain.Identity, input ListInput) (*domain.OrderPage, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
	BoardingPass(ctx context.Context, identity domain.Identity, orderID, ticketID int64) ([]byte, error)
}

// LayoutSource resolves the seat layout of each flight.
type LayoutSource interface {
	Layouts(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatLayout, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type ListInput struct {
	Page     int
	PageSize int
	OrderID  int64
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            LayoutSource
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	limiter            *UserLimiter
	renderer           *boardingpass.Renderer
	publishTimeout     time.Duration
	pageSize           int
	maxPageSize        int
	log                *zap.Logger
}

type OrderServiceOption func(*OrderService)

func WithEvents(producer Producer, ordersTopic, notificationsTopic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.ordersTopic = ordersTopic
		s.notificationsTopic = notificationsTopic
	}
}

// WithPublishTimeout bounds how long a committed order waits on the broker.
func WithPublishTimeout(timeout time.Duration) OrderServiceOption {
	return func(s *OrderService) {
		s.publishTimeout = timeout
	}
}

func WithLimiter(limiter *UserLimiter) OrderServiceOption {
	return func(s *OrderService) {
		s.limiter = limiter
	}
}

func WithPageSize(pageSize, maxPageSize int) OrderServiceOption {
	return func(s *OrderService) {
		s.pageSize = pageSize
		s.maxPageSize = maxPageSize
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights LayoutSource,
	log *zap.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flights,
		renderer:       boardingpass.NewRenderer(),
		publishTimeout: 2 * time.Second,
		pageSize:       10,
		maxPageSize:    100,
		log:            log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books every requested place under one new order. Nothing is stored
// unless all places are valid and free.
func (s *OrderService) Create(ctx context.Context, identity domain.Identity, specs []domain.TicketSpec) (*domain.Order, error) {
	if identity.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	if len(specs) == 0 {
		return nil, domain.ErrEmptyTickets
	}
	if !s.limiter.Allow(identity.UserID) {
		return nil, domain.ErrRateLimited
	}

	if err := s.validate(ctx, specs); err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, identity.UserID, specs)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) validate(ctx context.Context, specs []domain.TicketSpec) error {
	ids := make([]int64, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.FlightID)
	}
	layouts, err := s.flights.Layouts(ctx, ids)
	if err != nil {
		return err
	}

	verr := &domain.ValidationError{}
	for i, spec := range specs {
		prefix := fmt.Sprintf("tickets[%d]", i)
		layout, ok := layouts[spec.FlightID]
		if !ok {
			verr.Add(prefix+".flight", fmt.Sprintf(`invalid pk "%d" - object does not exist`, spec.FlightID))
			continue
		}
		var seatErr *domain.ValidationError
		if err := domain.ValidateSeat(spec.Row, spec.Seat, layout); errors.As(err, &seatErr) {
			verr.Merge(prefix, seatErr)
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func (s *OrderService) List(ctx context.Context, identity domain.Identity, input ListInput) (*domain.OrderPage, error) {
	if identity.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.PageSize
	if size < 1 {
		size = s.pageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}

	result, err := s.orders.List(ctx, identity.UserID, domain.OrderFilter{
		OrderID: input.OrderID,
		Limit:   size,
		Offset:  (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	if page > 1 && len(result.Orders) == 0 {
		return nil, domain.ErrNotFound
	}
	result.Page = page
	result.PageSize = size
	return result, nil
}

func (s *OrderService) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error) {
	if identity.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.GetByID(ctx, identity.UserID, id)
}

func (s *OrderService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	order, err := s.Get(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, identity.UserID, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventOrderDeleted, order)
	return nil
}

func (s *OrderService) BoardingPass(ctx context.Context, identity domain.Identity, orderID, ticketID int64) ([]byte, error) {
	order, err := s.Get(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}
	for i := range order.Tickets {
		if order.Tickets[i].ID == ticketID {
			return s.renderer.Render(order, &order.Tickets[i])
		}
	}
	return nil, domain.ErrNotFound
}

// publish is best effort: the order is already committed. It outlives a
// cancelled request but never waits on the broker past publishTimeout.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.producer == nil || s.ordersTopic == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	event := kafka.OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Tickets:    make([]kafka.EventTicket, 0, len(order.Tickets)),
		OccurredAt: time.Now().UTC(),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.EventTicket{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	key := fmt.Sprint(order.ID)
	for _, topic := range []string{s.ordersTopic, s.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, key, event); err != nil {
			s.log.Warn("failed to publish order event",
				zap.String("type", eventType),
				zap.String("topic", topic),
				zap.Int64("order_id", order.ID),
				zap.Error(err),
			)
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
