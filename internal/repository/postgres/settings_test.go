package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"commonage-backend/internal/domain"
)

func TestSettingsRepository_GetBool(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewSettingsRepository(db)
	ctx := context.Background()

	t.Run("Open", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
			WithArgs(domain.SettingLandApplicationsOpen).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("true"))

		open, err := repo.GetBool(ctx, domain.SettingLandApplicationsOpen)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("MissingKeyDefaultsClosed", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
			WithArgs(domain.SettingLandApplicationsOpen).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		open, err := repo.GetBool(ctx, domain.SettingLandApplicationsOpen)
		assert.NoError(t, err)
		assert.False(t, open)
	})
}

func TestSettingsRepository_SetBool(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewSettingsRepository(db)

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(domain.SettingLandApplicationsOpen, "true").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetBool(context.Background(), domain.SettingLandApplicationsOpen, true)
	assert.NoError(t, err)
}
