package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneTypeRepository interface {
	List(ctx context.Context) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, t *domain.AirplaneType) error
	Update(ctx context.Context, t *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneRepository interface {
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.AirplaneListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneDetail, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, wrap("list airplane types", err)
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, wrap("scan airplane type", err)
		}
		types = append(types, t)
	}
	return types, wrap("list airplane types", rows.Err())
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, wrap("get airplane type", err)
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	return wrap("create airplane type", r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID))
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	return wrap("update airplane type", r.db.QueryRow(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2 RETURNING id`, t.Name, t.ID).Scan(&t.ID))
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplane_types", id)
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.AirplaneListItem, error) {
	var (
		where []string
		args  []any
	)
	if filter.Name != "" {
		args = append(args, filter.Name)
		where = append(where, fmt.Sprintf("a.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.TypeID != 0 {
		args = append(args, filter.TypeID)
		where = append(where, fmt.Sprintf("a.airplane_type_id = $%d", len(args)))
	}

	query := `SELECT a.id, a.name, a.rows, a.seats_in_row, t.name FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list airplanes", err)
	}
	defer rows.Close()

	airplanes := make([]domain.AirplaneListItem, 0)
	for rows.Next() {
		var item domain.AirplaneListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Rows, &item.SeatsInRow, &item.AirplaneType); err != nil {
			return nil, wrap("scan airplane", err)
		}
		item.Capacity = domain.SeatLayout{Rows: item.Rows, SeatsInRow: item.SeatsInRow}.Capacity()
		airplanes = append(airplanes, item)
	}
	return airplanes, wrap("list airplanes", rows.Err())
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneDetail, error) {
	var d domain.AirplaneDetail
	err := r.db.QueryRow(ctx, `SELECT a.id, a.name, a.rows, a.seats_in_row, t.id, t.name FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id WHERE a.id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Rows, &d.SeatsInRow, &d.AirplaneType.ID, &d.AirplaneType.Name)
	if err != nil {
		return nil, wrap("get airplane", err)
	}
	d.Capacity = domain.SeatLayout{Rows: d.Rows, SeatsInRow: d.SeatsInRow}.Capacity()
	return &d, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
	return wrap("create airplane", err)
}

// Update locks the airplane row so no order can sell a place outside the new
// layout while it is being checked.
func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin airplane tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `SELECT id FROM airplanes WHERE id=$1 FOR UPDATE`, airplane.ID).Scan(&airplane.ID); err != nil {
		return wrap("lock airplane", err)
	}

	var maxRow, maxSeat int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(max(t."row"), 0), COALESCE(max(t.seat), 0) FROM tickets t
		JOIN flights f ON f.id = t.flight_id WHERE f.airplane_id=$1`, airplane.ID).Scan(&maxRow, &maxSeat); err != nil {
		return wrap("load sold places", err)
	}
	if err := domain.ValidateLayout(airplane.Layout(), maxRow, maxSeat); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID); err != nil {
		return wrap("update airplane", err)
	}
	return tx.Commit(ctx)
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplanes", id)
}

var (
	_ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
	_ AirplaneRepository     = (*PGAirplaneRepository)(nil)
)
