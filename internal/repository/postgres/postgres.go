package postgres

import (
	"database/sql"
	"errors"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.RegistrationRepository
	repository.ApplicationRepository
	repository.AttachmentRepository
	repository.AuditRepository
	repository.NotificationRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		AttachmentRepository:   NewAttachmentRepository(db),
		AuditRepository:        NewAuditRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
	}
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// failure, the concurrency guard for one-registration/one-application per
// user.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// notFound maps the driver's no-rows sentinel onto the domain taxonomy.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
