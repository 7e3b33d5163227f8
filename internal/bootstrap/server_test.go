package bootstrap

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airport-service/config"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type denyAll struct{}

func (denyAll) Identity(string) (domain.Identity, error) {
	return domain.Identity{}, domain.ErrInvalidToken
}

func TestServers_HealthAndShutdown(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}
	s := NewServers(cfg, zap.NewNop(), http.NotFoundHandler(), nil, denyAll{})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("servers did not stop")
	}
}
