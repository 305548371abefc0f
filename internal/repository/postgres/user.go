package postgres

import (
	"context"
	"database/sql"
	"time"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create upserts on the identity-provider subject so first-sign-in races
// converge on one row.
func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (subject, email, name, staff, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (subject) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name
	          RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, u.Subject, u.Email, u.Name, u.Staff, time.Now()).
		Scan(&u.ID, &u.CreatedOn)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, subject, email, COALESCE(name, ''), staff, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.Staff, &u.CreatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, subject, email, COALESCE(name, ''), staff, created_on FROM users WHERE subject = $1`
	err := r.db.QueryRowContext(ctx, query, subject).Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.Staff, &u.CreatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
