package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgDeadlockDetected    = "40P01"
	pgSerializationFail   = "40001"

	ticketSeatConstraint = "tickets_flight_row_seat_key"
)

// fkFields maps foreign key constraint names to the request field they come from.
var fkFields = map[string]string{
	"routes_source_id_fkey":           "source",
	"routes_destination_id_fkey":      "destination",
	"airplanes_airplane_type_id_fkey": "airplane_type",
	"flights_route_id_fkey":           "route",
	"flights_airplane_id_fkey":        "airplane",
	"flight_crews_crew_id_fkey":       "crews",
	"tickets_flight_id_fkey":          "flight",
}

var checkFields = map[string]string{
	"routes_distance_check":        "distance",
	"airplanes_rows_check":         "rows",
	"airplanes_seats_in_row_check": "seats_in_row",
}

// mapError translates driver errors into domain errors. Unknown errors are
// returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		field, ok := fkFields[pgErr.ConstraintName]
		if !ok {
			field = "non_field_errors"
		}
		return domain.NewValidationError(field, "invalid pk - object does not exist")
	case pgCheckViolation:
		field, ok := checkFields[pgErr.ConstraintName]
		if !ok {
			field = "non_field_errors"
		}
		return domain.NewValidationError(field, "ensure this value is within the allowed range")
	}
	return err
}

func isSeatCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == ticketSeatConstraint
}

// isTxConflict reports a transaction aborted because it raced another one.
func isTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgDeadlockDetected || pgErr.Code == pgSerializationFail
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	mapped := mapError(err)
	if mapped != err {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}
