package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderEventHandler(t *testing.T) {
	event := OrderEvent{
		EventID:    "e1",
		Type:       EventOrderCreated,
		OrderID:    7,
		UserID:     3,
		Tickets:    []EventTicket{{FlightID: 1, Row: 2, Seat: 3}},
		OccurredAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	var got OrderEvent
	handler := OrderEventHandler(zap.NewNop(), func(_ context.Context, e OrderEvent) error {
		got = e
		return nil
	})

	require.NoError(t, handler(context.Background(), kafka.Message{Value: data}))
	assert.Equal(t, event, got)
}

func TestOrderEventHandler_SkipsMalformed(t *testing.T) {
	called := false
	handler := OrderEventHandler(zap.NewNop(), func(context.Context, OrderEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("{broken")}))
	assert.False(t, called)
}

func TestOrderEventHandler_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	handler := OrderEventHandler(zap.NewNop(), func(context.Context, OrderEvent) error { return boom })

	err := handler(context.Background(), kafka.Message{Value: []byte(`{"type":"order_deleted"}`)})
	assert.ErrorIs(t, err, boom)
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, zap.NewNop())
	defer p.Close()

	assert.Error(t, p.CheckConnection(context.Background()))
}
