package orders_service_api

import (
	"context"
	"strings"

	"github.com/Domenick1991/airport-service/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type Authenticator interface {
	Identity(raw string) (domain.Identity, error)
}

type identityKey struct{}

func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the zero identity for unauthenticated calls.
func IdentityFromContext(ctx context.Context) domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(domain.Identity)
	return identity
}

// AuthInterceptor requires a bearer token in the "authorization" metadata for
// every method of the orders service. Other services pass through.
func AuthInterceptor(auth Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, domain.ErrUnauthorized.Error())
		}
		scheme, token, ok := strings.Cut(values[0], " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return nil, status.Error(codes.Unauthenticated, domain.ErrUnauthorized.Error())
		}
		identity, err := auth.Identity(strings.TrimSpace(token))
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, domain.ErrInvalidToken.Error())
		}
		return handler(ContextWithIdentity(ctx, identity), req)
	}
}
