package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
)

// Store is the persistence contract the Manager works against.
type Store interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repository persists sessions in Postgres.
type Repository struct {
	db *sqlx.DB
}

// NewRepository constructs a Repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, secret_hash, user_id, role, token, user_json, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		s.ID, s.SecretHash, s.UserID, s.Role, s.Token, s.UserJSON, s.ExpiresAt,
	).Scan(&s.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.db.GetContext(ctx, &s, `
		SELECT id, secret_hash, user_id, role, token, user_json, expires_at, created_at
		FROM sessions
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpired removes sessions past their expiry and returns the count.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
