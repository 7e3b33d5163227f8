package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyTickets       = errors.New("order must contain at least one ticket")
	ErrDuplicateSeat      = errors.New("seat is already taken")
	ErrUnauthorized       = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrRateLimited        = errors.New("request was throttled")
)

// ValidationError reports offending input fields. Keys are field paths such as
// "row" or "tickets[2].seat".
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	v.Fields[field] = message
}

// Merge copies the fields of other under prefix ("tickets[0]" + "." + field).
func (v *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for field, msg := range other.Fields {
		if prefix != "" {
			field = prefix + "." + field
		}
		v.Add(field, msg)
	}
}

func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DuplicateSeatError carries the seat key that collided.
type DuplicateSeatError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("seat is already taken: flight %d, row %d, seat %d", e.FlightID, e.Row, e.Seat)
}

func (e *DuplicateSeatError) Is(target error) bool {
	return target == ErrDuplicateSeat
}
