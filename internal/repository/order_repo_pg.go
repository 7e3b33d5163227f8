package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// Create stores the order and every ticket in one transaction. Either all
	// tickets are committed under the new order or nothing is.
	Create(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error)
	List(ctx context.Context, userID int64, filter domain.OrderFilter) (*domain.OrderPage, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
	Delete(ctx context.Context, userID, id int64) error
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) Create(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error) {
	if len(specs) == 0 {
		return nil, domain.ErrEmptyTickets
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &domain.Order{UserID: userID}
	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, userID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, wrap("insert order", err)
	}

	layouts := make(map[int64]domain.SeatLayout)
	order.Tickets = make([]domain.Ticket, len(specs))
	for _, i := range insertOrder(specs) {
		ticket, err := insertTicket(ctx, tx, order.ID, specs[i], layouts)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				prefixed := &domain.ValidationError{}
				prefixed.Merge(fmt.Sprintf("tickets[%d]", i), verr)
				return nil, prefixed
			}
			return nil, err
		}
		order.Tickets[i] = *ticket
	}

	flights, err := flightsByIDs(ctx, tx, distinctFlightIDs(order.Tickets))
	if err != nil {
		return nil, err
	}
	attachFlights(order.Tickets, flights)

	if err := tx.Commit(ctx); err != nil {
		if isSeatCollision(err) || isTxConflict(err) {
			return nil, domain.ErrDuplicateSeat
		}
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return order, nil
}

// insertOrder returns spec indexes sorted by (flight, row, seat). Concurrent
// orders then take seat keys in the same order and cannot wait on each other
// in a cycle.
func insertOrder(specs []domain.TicketSpec) []int {
	idx := make([]int, len(specs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		x, y := specs[idx[a]], specs[idx[b]]
		if x.FlightID != y.FlightID {
			return x.FlightID < y.FlightID
		}
		if x.Row != y.Row {
			return x.Row < y.Row
		}
		return x.Seat < y.Seat
	})
	return idx
}

// insertTicket is the only ticket write path. It re-checks the place against
// the airplane layout, share-locked until commit, before inserting; the seat
// key itself is guarded by the tickets_flight_row_seat_key constraint.
func insertTicket(ctx context.Context, tx pgx.Tx, orderID int64, spec domain.TicketSpec, layouts map[int64]domain.SeatLayout) (*domain.Ticket, error) {
	layout, ok := layouts[spec.FlightID]
	if !ok {
		err := tx.QueryRow(ctx, `SELECT a.rows, a.seats_in_row FROM flights f
			JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1 FOR SHARE OF a`, spec.FlightID).
			Scan(&layout.Rows, &layout.SeatsInRow)
		if err != nil {
			if isTxConflict(err) {
				return nil, domain.ErrDuplicateSeat
			}
			if errors.Is(mapError(err), domain.ErrNotFound) {
				return nil, domain.NewValidationError("flight", fmt.Sprintf(`invalid pk "%d" - object does not exist`, spec.FlightID))
			}
			return nil, wrap("load seat layout", err)
		}
		layouts[spec.FlightID] = layout
	}

	if err := domain.ValidateSeat(spec.Row, spec.Seat, layout); err != nil {
		return nil, err
	}

	t := &domain.Ticket{Row: spec.Row, Seat: spec.Seat, FlightID: spec.FlightID, OrderID: orderID}
	err := tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		spec.Row, spec.Seat, spec.FlightID, orderID).Scan(&t.ID)
	if err != nil {
		if isSeatCollision(err) {
			return nil, &domain.DuplicateSeatError{FlightID: spec.FlightID, Row: spec.Row, Seat: spec.Seat}
		}
		if isTxConflict(err) {
			return nil, domain.ErrDuplicateSeat
		}
		return nil, wrap("insert ticket", err)
	}
	return t, nil
}

func (r *PGOrderRepository) List(ctx context.Context, userID int64, filter domain.OrderFilter) (*domain.OrderPage, error) {
	where := "user_id=$1"
	args := []any{userID}
	if filter.OrderID != 0 {
		args = append(args, filter.OrderID)
		where += " AND id=$2"
	}

	page := &domain.OrderPage{Orders: make([]domain.Order, 0)}
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE `+where, args...).Scan(&page.Count); err != nil {
		return nil, wrap("count orders", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT id, user_id, created_at FROM orders WHERE %s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, wrap("list orders", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		var o domain.Order
		err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, wrap("scan orders", err)
	}

	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}
	page.Orders = orders
	return page, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
		return nil, wrap("get order", err)
	}

	orders := []domain.Order{o}
	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// Delete removes the order; its tickets go with it through ON DELETE CASCADE.
func (r *PGOrderRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return wrap("delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGOrderRepository) loadTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
		orders[i].Tickets = make([]domain.Ticket, 0)
	}

	rows, err := r.db.Query(ctx, `SELECT id, "row", seat, flight_id, order_id FROM tickets WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return wrap("list tickets", err)
	}
	tickets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ticket, error) {
		var t domain.Ticket
		err := row.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID)
		return t, err
	})
	if err != nil {
		return wrap("scan tickets", err)
	}

	flights, err := flightsByIDs(ctx, r.db, distinctFlightIDs(tickets))
	if err != nil {
		return err
	}
	attachFlights(tickets, flights)

	for _, t := range tickets {
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return nil
}

func distinctFlightIDs(tickets []domain.Ticket) []int64 {
	seen := make(map[int64]struct{}, len(tickets))
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.FlightID]; ok {
			continue
		}
		seen[t.FlightID] = struct{}{}
		ids = append(ids, t.FlightID)
	}
	return ids
}

func attachFlights(tickets []domain.Ticket, flights map[int64]domain.FlightListItem) {
	for i := range tickets {
		if f, ok := flights[tickets[i].FlightID]; ok {
			f := f
			tickets[i].Flight = &f
		}
	}
}

var _ OrderRepository = (*PGOrderRepository)(nil)
