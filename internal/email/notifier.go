package email

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/kafka"
	"go.uber.org/zap"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 500 * time.Millisecond
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier turns order events into emails for the event's user.
type Notifier struct {
	users    UserLookup
	sender   *Sender
	log      *zap.Logger
	attempts int
	backoff  time.Duration
}

func NewNotifier(users UserLookup, sender *Sender, log *zap.Logger) *Notifier {
	return &Notifier{
		users:    users,
		sender:   sender,
		log:      log,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

// Handle never fails the consumer: an event whose user cannot be loaded after
// the retries is logged and skipped. It only returns ctx.Err() on shutdown.
func (n *Notifier) Handle(ctx context.Context, event kafka.OrderEvent) error {
	user, err := n.lookup(ctx, event.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		n.log.Warn("order event for unknown user", zap.Int64("user_id", event.UserID), zap.String("event_id", event.EventID))
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		n.log.Error("skip order event", zap.Int64("user_id", event.UserID), zap.String("event_id", event.EventID), zap.Error(err))
		return nil
	}

	if err := n.sender.Send(ctx, user.Email, event); err != nil {
		n.log.Error("send email", zap.String("event_id", event.EventID), zap.Error(err))
	}
	return nil
}

func (n *Notifier) lookup(ctx context.Context, userID int64) (*domain.User, error) {
	var err error
	for attempt := 1; attempt <= n.attempts; attempt++ {
		var user *domain.User
		user, err = n.users.GetByID(ctx, userID)
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			return user, err
		}
		if attempt == n.attempts {
			break
		}
		n.log.Warn("load user for order event", zap.Int64("user_id", userID), zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * n.backoff):
		}
	}
	return nil, err
}
