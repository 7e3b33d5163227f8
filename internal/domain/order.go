package domain

import "time"

type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

type Ticket struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"-"`
	OrderID  int64 `json:"-"`
	// Flight is filled in for read paths.
	Flight *FlightListItem `json:"flight,omitempty"`
}

// TicketSpec is one requested seat of an order.
type TicketSpec struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}

type OrderFilter struct {
	OrderID int64
	Limit   int
	Offset  int
}

type OrderPage struct {
	Count    int     `json:"count"`
	Orders   []Order `json:"results"`
	Page     int     `json:"-"`
	PageSize int     `json:"-"`
}

// HasNext reports whether a page follows this one.
func (p *OrderPage) HasNext() bool {
	return p.Page*p.PageSize < p.Count
}
