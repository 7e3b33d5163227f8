package boardingpass

import (
	"fmt"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

type Renderer struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewRenderer() *Renderer {
	return &Renderer{size: defaultSize, level: qrcode.Medium}
}

// Payload is the text encoded in the QR code of one ticket.
func Payload(order *domain.Order, ticket *domain.Ticket) string {
	payload := fmt.Sprintf("ORDER:%d|TICKET:%d|ROW:%d|SEAT:%d", order.ID, ticket.ID, ticket.Row, ticket.Seat)
	if f := ticket.Flight; f != nil {
		payload += fmt.Sprintf("|FLIGHT:%d|%s>%s|DEP:%s", f.ID, f.Source, f.Destination, f.DepartureTime.UTC().Format(time.RFC3339))
	} else {
		payload += fmt.Sprintf("|FLIGHT:%d", ticket.FlightID)
	}
	return payload
}

// Render returns a PNG image of the ticket's QR code.
func (r *Renderer) Render(order *domain.Order, ticket *domain.Ticket) ([]byte, error) {
	png, err := qrcode.Encode(Payload(order, ticket), r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode boarding pass: %w", err)
	}
	return png, nil
}
