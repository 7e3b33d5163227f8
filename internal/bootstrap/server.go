package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airport-service/config"
	ordersapi "github.com/Domenick1991/airport-service/internal/api/orders_service_api"
	"github.com/Domenick1991/airport-service/internal/service/orders"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
	log        *zap.Logger
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled or a
// server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, handler http.Handler, orderSvc orders.OrderUseCase, auth ordersapi.Authenticator) error {
	s := NewServers(cfg, log, handler, orderSvc, auth)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	return s.Serve(ctx, lis)
}

func NewServers(cfg *config.Config, log *zap.Logger, handler http.Handler, orderSvc orders.OrderUseCase, auth ordersapi.Authenticator) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		recoverInterceptor(log),
		ordersapi.AuthInterceptor(auth),
	))
	ordersapi.RegisterOrdersServiceServer(grpcSrv, ordersapi.NewServer(orderSvc))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Serve runs gRPC on lis and HTTP on the configured address.
func (s *Servers) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 2)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ordersapi.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		s.log.Info("gRPC server listening", zap.String("address", lis.Addr().String()))
		errCh <- s.grpcServer.Serve(lis)
	}()
	go func() {
		s.log.Info("HTTP server listening", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func recoverInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("gRPC handler panic", zap.String("method", info.FullMethod), zap.Any("panic", r))
				err = fmt.Errorf("internal error in %s", info.FullMethod)
			}
		}()
		return handler(ctx, req)
	}
}
