package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport-service/internal/kafka"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers notifications by writing them to the log.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, to string, event kafka.OrderEvent) error {
	msg := Compose(to, event)
	s.log.Info("send email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID),
	)
	return nil
}

func Compose(to string, event kafka.OrderEvent) Message {
	var subject string
	switch event.Type {
	case kafka.EventOrderCreated:
		subject = fmt.Sprintf("Order #%d confirmed", event.OrderID)
	case kafka.EventOrderDeleted:
		subject = fmt.Sprintf("Order #%d cancelled", event.OrderID)
	default:
		subject = fmt.Sprintf("Order #%d updated", event.OrderID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s UTC.\n", subject, event.OccurredAt.UTC().Format("2006-01-02 15:04"))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "Flight %d: row %d, seat %d\n", t.FlightID, t.Row, t.Seat)
	}
	return Message{To: to, Subject: subject, Body: b.String()}
}
