package email

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airport-service/internal/kafka"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCompose(t *testing.T) {
	event := kafka.OrderEvent{
		Type:       kafka.EventOrderCreated,
		OrderID:    12,
		OccurredAt: time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		Tickets: []kafka.EventTicket{
			{FlightID: 1, Row: 2, Seat: 3},
			{FlightID: 1, Row: 2, Seat: 4},
		},
	}

	msg := Compose("user@example.com", event)
	assert.Equal(t, "user@example.com", msg.To)
	assert.Equal(t, "Order #12 confirmed", msg.Subject)
	assert.Contains(t, msg.Body, "2030-05-01 10:30")
	assert.Contains(t, msg.Body, "Flight 1: row 2, seat 3")
	assert.Contains(t, msg.Body, "Flight 1: row 2, seat 4")
}

func TestCompose_Deleted(t *testing.T) {
	msg := Compose("a@b.c", kafka.OrderEvent{Type: kafka.EventOrderDeleted, OrderID: 5})
	assert.Equal(t, "Order #5 cancelled", msg.Subject)
}

func TestSender_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core))
	event := kafka.OrderEvent{
		Type:    kafka.EventOrderCreated,
		OrderID: 1,
		Tickets: []kafka.EventTicket{{FlightID: 3, Row: 2, Seat: 4}},
	}

	assert.NoError(t, s.Send(context.Background(), "a@b.c", event))

	entries := logs.FilterMessage("send email").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "a@b.c", fields["to"])
		assert.Equal(t, Compose("a@b.c", event).Body, fields["body"])
		assert.Contains(t, fields["body"], "Flight 3: row 2, seat 4")
	}
}
