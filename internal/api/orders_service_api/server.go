package orders_service_api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/service/orders"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements OrdersServiceServer on top of the order service.
type Server struct {
	orders orders.OrderUseCase
}

func NewServer(orders orders.OrderUseCase) *Server {
	return &Server{orders: orders}
}

type createOrderRequest struct {
	Tickets []domain.TicketSpec `json:"tickets"`
}

type listOrdersRequest struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Order    int64 `json:"order"`
}

func (s *Server) CreateOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createOrderRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	order, err := s.orders.Create(ctx, IdentityFromContext(ctx), req.Tickets)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(order)
}

func (s *Server) ListOrders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listOrdersRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	page, err := s.orders.List(ctx, IdentityFromContext(ctx), orders.ListInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderID:  req.Order,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(page)
}

func decode(in *structpb.Struct, dst any) error {
	data, err := in.MarshalJSON()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// toStatus maps domain errors to gRPC codes. Validation details are carried
// in the message as "field: message" pairs.
func toStatus(err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, domain.ErrEmptyTickets):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrDuplicateSeat):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

var _ OrdersServiceServer = (*Server)(nil)
