package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightListItem, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.FlightListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Layouts(ctx context.Context, ids []int64) (map[int64]domain.SeatLayout, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// flightListQuery counts tickets in the same statement, so availability only
// ever reflects committed rows.
const flightListQuery = `SELECT f.id, src.name, dst.name, a.name, f.departure_time, f.arrival_time,
		a.rows, a.seats_in_row,
		(SELECT count(*) FROM tickets t WHERE t.flight_id = f.id),
		COALESCE((SELECT array_agg(c.first_name || ' ' || c.last_name ORDER BY c.id)
			FROM flight_crews fc JOIN crews c ON c.id = fc.crew_id
			WHERE fc.flight_id = f.id), '{}')
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id`

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightListItem, error) {
	where, args := flightFilterClause(filter)
	return listFlights(ctx, r.db, where, args)
}

func (r *PGFlightRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.FlightListItem, error) {
	return flightsByIDs(ctx, r.db, ids)
}

func flightsByIDs(ctx context.Context, q querier, ids []int64) (map[int64]domain.FlightListItem, error) {
	out := make(map[int64]domain.FlightListItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := listFlights(ctx, q, []string{"f.id = ANY($1)"}, []any{ids})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

func flightFilterClause(filter domain.FlightFilter) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Source != "" {
		args = append(args, filter.Source)
		where = append(where, fmt.Sprintf("src.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		where = append(where, fmt.Sprintf("dst.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Airplane != "" {
		args = append(args, filter.Airplane)
		where = append(where, fmt.Sprintf("a.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Departure != nil {
		args = append(args, filter.Departure.Format("2006-01-02"))
		where = append(where, fmt.Sprintf("(f.departure_time AT TIME ZONE 'UTC')::date = $%d::date", len(args)))
	}
	if filter.Arrival != nil {
		args = append(args, filter.Arrival.Format("2006-01-02"))
		where = append(where, fmt.Sprintf("(f.arrival_time AT TIME ZONE 'UTC')::date = $%d::date", len(args)))
	}
	return where, args
}

func listFlights(ctx context.Context, q querier, where []string, args []any) ([]domain.FlightListItem, error) {
	query := flightListQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.departure_time DESC, f.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list flights", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightListItem, 0)
	for rows.Next() {
		var (
			f      domain.FlightListItem
			layout domain.SeatLayout
			booked int
		)
		if err := rows.Scan(&f.ID, &f.Source, &f.Destination, &f.Airplane, &f.DepartureTime, &f.ArrivalTime,
			&layout.Rows, &layout.SeatsInRow, &booked, &f.Crews); err != nil {
			return nil, wrap("scan flight", err)
		}
		f.TicketsAvailable = domain.TicketsAvailable(layout, booked)
		flights = append(flights, f)
	}
	return flights, wrap("list flights", rows.Err())
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	var d domain.FlightDetail
	err := r.db.QueryRow(ctx, `SELECT f.id, f.departure_time, f.arrival_time,
			r.id, src.name, dst.name, r.distance,
			a.id, a.name, a.rows, a.seats_in_row, t.name
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE f.id=$1`, id).
		Scan(&d.ID, &d.DepartureTime, &d.ArrivalTime,
			&d.Route.ID, &d.Route.Source, &d.Route.Destination, &d.Route.Distance,
			&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow, &d.Airplane.AirplaneType)
	if err != nil {
		return nil, wrap("get flight", err)
	}
	d.Airplane.Capacity = domain.SeatLayout{Rows: d.Airplane.Rows, SeatsInRow: d.Airplane.SeatsInRow}.Capacity()

	crewRows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id WHERE fc.flight_id=$1 ORDER BY c.id`, id)
	if err != nil {
		return nil, wrap("get flight crews", err)
	}
	d.Crews, err = pgx.CollectRows(crewRows, func(row pgx.CollectableRow) (domain.Crew, error) {
		var c domain.Crew
		err := row.Scan(&c.ID, &c.FirstName, &c.LastName)
		return c, err
	})
	if err != nil {
		return nil, wrap("scan flight crews", err)
	}

	placeRows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, wrap("get taken places", err)
	}
	d.TakenPlaces, err = pgx.CollectRows(placeRows, func(row pgx.CollectableRow) (domain.Place, error) {
		var p domain.Place
		err := row.Scan(&p.Row, &p.Seat)
		return p, err
	})
	if err != nil {
		return nil, wrap("scan taken places", err)
	}
	return &d, nil
}

func (r *PGFlightRepository) Layouts(ctx context.Context, ids []int64) (map[int64]domain.SeatLayout, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, a.rows, a.seats_in_row FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id WHERE f.id = ANY($1)`, ids)
	if err != nil {
		return nil, wrap("load seat layouts", err)
	}
	defer rows.Close()

	layouts := make(map[int64]domain.SeatLayout, len(ids))
	for rows.Next() {
		var (
			id     int64
			layout domain.SeatLayout
		)
		if err := rows.Scan(&id, &layout.Rows, &layout.SeatsInRow); err != nil {
			return nil, wrap("scan seat layout", err)
		}
		layouts[id] = layout
	}
	return layouts, wrap("load seat layouts", rows.Err())
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin flight tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4) RETURNING id`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID); err != nil {
		return wrap("insert flight", err)
	}
	if err := insertFlightCrews(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin flight tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4
		WHERE id=$5 RETURNING id`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID).
		Scan(&flight.ID); err != nil {
		return wrap("update flight", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return wrap("clear flight crews", err)
	}
	if err := insertFlightCrews(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertFlightCrews(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, flightID, crewID); err != nil {
			return wrap("insert flight crew", err)
		}
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "flights", id)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
