package orders_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "airport.v1.OrdersService"

	CreateOrderMethod = "/" + ServiceName + "/CreateOrder"
	ListOrdersMethod  = "/" + ServiceName + "/ListOrders"
)

// OrdersServiceServer exchanges google.protobuf.Struct messages shaped like
// the REST payloads.
type OrdersServiceServer interface {
	CreateOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListOrders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrdersServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateOrder", Handler: unaryHandler(CreateOrderMethod, OrdersServiceServer.CreateOrder)},
		{MethodName: "ListOrders", Handler: unaryHandler(ListOrdersMethod, OrdersServiceServer.ListOrders)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airport/v1/orders.proto",
}

func RegisterOrdersServiceServer(s grpc.ServiceRegistrar, srv OrdersServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(OrdersServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrdersServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OrdersServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
