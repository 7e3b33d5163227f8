package domain

import "fmt"

// SeatLayout is the part of an airplane that bounds ticket places.
type SeatLayout struct {
	Rows       int
	SeatsInRow int
}

func (l SeatLayout) Capacity() int {
	return l.Rows * l.SeatsInRow
}

// ValidateSeat checks a place against the layout of the flight's airplane.
// It is the only place-range rule: both the order service and the ticket
// insert path call it. A nil return means the place exists.
func ValidateSeat(row, seat int, layout SeatLayout) error {
	verr := &ValidationError{}
	checks := []struct {
		value int
		field string
		bound string
		max   int
	}{
		{row, "row", "rows", layout.Rows},
		{seat, "seat", "seats_in_row", layout.SeatsInRow},
	}
	for _, c := range checks {
		if c.value < 1 || c.value > c.max {
			verr.Add(c.field, fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", c.field, c.bound, c.max))
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// TicketsAvailable is capacity minus the number of committed tickets.
func TicketsAvailable(layout SeatLayout, booked int) int {
	return layout.Capacity() - booked
}

// ValidateLayout rejects a layout that no longer contains the highest row and
// seat already sold on the airplane's flights. Zero means nothing is sold.
func ValidateLayout(layout SeatLayout, maxRow, maxSeat int) error {
	verr := &ValidationError{}
	if maxRow > layout.Rows {
		verr.Add("rows", fmt.Sprintf("tickets are sold up to row %d", maxRow))
	}
	if maxSeat > layout.SeatsInRow {
		verr.Add("seats_in_row", fmt.Sprintf("tickets are sold up to seat %d", maxSeat))
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
