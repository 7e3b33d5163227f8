package repository

import (
	"context"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, image string) (*domain.Airport, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, closest_big_city, image FROM airports ORDER BY id`)
	if err != nil {
		return nil, wrap("list airports", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Image); err != nil {
			return nil, wrap("scan airport", err)
		}
		airports = append(airports, a)
	}
	return airports, wrap("list airports", rows.Err())
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city, image FROM airports WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Image)
	if err != nil {
		return nil, wrap("get airport", err)
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city, image) VALUES ($1, $2, $3) RETURNING id`,
		airport.Name, airport.ClosestBigCity, airport.Image).Scan(&airport.ID)
	return wrap("create airport", err)
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3 RETURNING image`,
		airport.Name, airport.ClosestBigCity, airport.ID).Scan(&airport.Image)
	return wrap("update airport", err)
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airports", id)
}

func (r *PGAirportRepository) SetImage(ctx context.Context, id int64, image string) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `UPDATE airports SET image=$1 WHERE id=$2 RETURNING id, name, closest_big_city, image`, image, id).
		Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Image)
	if err != nil {
		return nil, wrap("set airport image", err)
	}
	return &a, nil
}

// deleteByID is shared by the catalog repositories. table is never user input.
func deleteByID(ctx context.Context, q querier, table string, id int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return wrap("delete from "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
