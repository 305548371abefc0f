package repository

import (
	"context"

	"commonage-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetBySubject(ctx context.Context, subject string) (*domain.User, error)
}

// DecideRegistrationParams carries one admin decision on a registration.
type DecideRegistrationParams struct {
	RegistrationID  int32
	Decision        domain.RegistrationDecision
	Actor           domain.Actor
	Note            string
	RejectionReason string
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.CommonerRegistration) error
	GetByID(ctx context.Context, id int32) (*domain.CommonerRegistration, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.CommonerRegistration, error)
	ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.CommonerRegistration, error)

	// Decide applies an admin decision inside a single transaction: it
	// re-reads the row, re-resolves document requirements for APPROVE,
	// mutates the status and appends the StatusLog/AdminEvent rows. Any
	// failure rolls back the whole transition.
	Decide(ctx context.Context, p DecideRegistrationParams) (*domain.CommonerRegistration, error)
}

// DecideApplicationParams carries one admin decision on an application.
type DecideApplicationParams struct {
	ApplicationID   int32
	Decision        domain.ApplicationDecision
	Actor           domain.Actor
	AdminNote       string
	RejectionReason string
	LotNumber       *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Application, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	ListStaleInReview(ctx context.Context, olderThanDays int) ([]domain.Application, error)

	// Submit moves DRAFT to SUBMITTED and stamps submitted_on, with the
	// status check and audit writes in one transaction.
	Submit(ctx context.Context, id int32, actor domain.Actor) (*domain.Application, error)

	// Decide applies an admin decision transactionally. The allowed-source
	// check runs against a freshly locked row, never a stale read.
	Decide(ctx context.Context, p DecideApplicationParams) (*domain.Application, error)

	// Reopen moves a terminal application back to UNDER_REVIEW and records
	// a REOPENED admin event.
	Reopen(ctx context.Context, id int32, actor domain.Actor, note string) (*domain.Application, error)
}

type AttachmentRepository interface {
	// Create persists the metadata row and the ATTACHMENT_ADDED event in
	// one transaction.
	Create(ctx context.Context, att *domain.Attachment, event *domain.AdminEvent) error
	GetByID(ctx context.Context, id int32) (*domain.Attachment, error)
	ListByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.Attachment, error)
	ListKindsByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.AttachmentKind, error)

	// Delete removes the metadata row and appends the ATTACHMENT_DELETED
	// event (carrying the pre-deletion metadata) in one transaction.
	Delete(ctx context.Context, id int32, event *domain.AdminEvent) error

	// ListStorageKeys returns every persisted storage key, used by the
	// cleanup job to distinguish confirmed blobs from abandoned uploads.
	ListStorageKeys(ctx context.Context) ([]string, error)
}

type AuditRepository interface {
	ListStatusLogs(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.StatusLog, error)
	ListAdminEvents(ctx context.Context, applicationID int32) ([]domain.AdminEvent, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type SettingsRepository interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}
