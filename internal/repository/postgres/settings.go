package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"commonage-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetBool reads the current value, never a cached one; a missing key reads
// as false (closed).
func (r *settingsRepository) GetBool(ctx context.Context, key string) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func (r *settingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	query := `INSERT INTO settings (key, value, updated_on) VALUES ($1, $2, now())
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_on = now()`
	_, err := r.db.ExecContext(ctx, query, key, strconv.FormatBool(value))
	return err
}
