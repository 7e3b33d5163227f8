package repository

import (
	"context"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id`)
	if err != nil {
		return nil, wrap("list crews", err)
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, wrap("scan crew", err)
		}
		crews = append(crews, c)
	}
	return crews, wrap("list crews", rows.Err())
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	if err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, wrap("get crew", err)
	}
	return &c, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	err := r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`, crew.FirstName, crew.LastName).Scan(&crew.ID)
	return wrap("create crew", err)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	err := r.db.QueryRow(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3 RETURNING id`, crew.FirstName, crew.LastName, crew.ID).Scan(&crew.ID)
	return wrap("update crew", err)
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "crews", id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
