package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, password_hash, is_staff) VALUES ($1, $2, $3) RETURNING id, created_at`,
		user.Email, user.PasswordHash, user.IsStaff).Scan(&user.ID, &user.CreatedAt)
	if isEmailTaken(err) {
		return domain.ErrEmailTaken
	}
	return wrap("create user", err)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT id, email, password_hash, is_staff, created_at FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, wrap("get user by email", err)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT id, email, password_hash, is_staff, created_at FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return &u, nil
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `UPDATE users SET email=$1, password_hash=$2 WHERE id=$3 RETURNING is_staff, created_at`,
		user.Email, user.PasswordHash, user.ID).Scan(&user.IsStaff, &user.CreatedAt)
	if isEmailTaken(err) {
		return domain.ErrEmailTaken
	}
	return wrap("update user", err)
}

func isEmailTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "users_email_key"
}

var _ UserRepository = (*PGUserRepository)(nil)
