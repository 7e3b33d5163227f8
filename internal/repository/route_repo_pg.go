package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.RouteListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.RouteDetail, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.RouteListItem, error) {
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

	query := `SELECT r.id, src.name, dst.name, r.distance FROM routes r
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list routes", err)
	}
	defer rows.Close()

	routes := make([]domain.RouteListItem, 0)
	for rows.Next() {
		var item domain.RouteListItem
		if err := rows.Scan(&item.ID, &item.Source, &item.Destination, &item.Distance); err != nil {
			return nil, wrap("scan route", err)
		}
		routes = append(routes, item)
	}
	return routes, wrap("list routes", rows.Err())
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	var d domain.RouteDetail
	err := r.db.QueryRow(ctx, `SELECT r.id, r.distance,
			src.id, src.name, src.closest_big_city, src.image,
			dst.id, dst.name, dst.closest_big_city, dst.image
		FROM routes r
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		WHERE r.id=$1`, id).
		Scan(&d.ID, &d.Distance,
			&d.Source.ID, &d.Source.Name, &d.Source.ClosestBigCity, &d.Source.Image,
			&d.Destination.ID, &d.Destination.Name, &d.Destination.ClosestBigCity, &d.Destination.Image)
	if err != nil {
		return nil, wrap("get route", err)
	}
	return &d, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return wrap("create route", err)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4 RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance, route.ID).Scan(&route.ID)
	return wrap("update route", err)
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "routes", id)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
