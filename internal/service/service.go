package service

import (
	"context"

	"commonage-backend/internal/domain"
)

type RegistrationService interface {
	// Register creates the caller's PENDING registration. Creation is
	// idempotent: a concurrent duplicate resolves to the existing row.
	Register(ctx context.Context, actor domain.Actor, fullName, nationalID string) (*domain.CommonerRegistration, error)
	GetMine(ctx context.Context, actor domain.Actor) (*domain.CommonerRegistration, error)
	List(ctx context.Context, actor domain.Actor, status domain.RegistrationStatus) ([]domain.CommonerRegistration, error)

	// Decide applies an admin APPROVE/REJECT. APPROVE is gated on the
	// document checklist; REJECT requires a reason.
	Decide(ctx context.Context, actor domain.Actor, registrationID int32, decision domain.RegistrationDecision, note, rejectionReason string) (*domain.CommonerRegistration, error)
}

type ApplicationService interface {
	// Start creates (or idempotently returns) the caller's DRAFT
	// application. Requires an APPROVED registration and the land
	// applications flag to be open.
	Start(ctx context.Context, actor domain.Actor, purpose string, alreadyHasLand bool) (*domain.Application, error)
	GetMine(ctx context.Context, actor domain.Actor) (*domain.Application, error)
	Get(ctx context.Context, actor domain.Actor, id int32) (*domain.Application, error)
	List(ctx context.Context, actor domain.Actor, status domain.ApplicationStatus) ([]domain.Application, error)

	Submit(ctx context.Context, actor domain.Actor, id int32) (*domain.Application, error)
	Decide(ctx context.Context, actor domain.Actor, id int32, decision domain.ApplicationDecision, adminNote, rejectionReason string, lotNumber *string) (*domain.Application, error)
	Reopen(ctx context.Context, actor domain.Actor, id int32, note string) (*domain.Application, error)

	History(ctx context.Context, actor domain.Actor, id int32) ([]domain.StatusLog, error)
	Events(ctx context.Context, actor domain.Actor, id int32) ([]domain.AdminEvent, error)
}

// AttachmentMeta is the validated upload metadata supplied by the UI layer.
type AttachmentMeta struct {
	Kind        domain.AttachmentKind
	Label       string
	URL         string
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

type AttachmentService interface {
	// UploadURL returns a presigned PUT URL and the storage key the caller
	// must echo back in Add.
	UploadURL(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32, filename, contentType string) (uploadURL, storageKey string, err error)

	// Add persists attachment metadata for an owner the actor controls (or
	// any owner, for staff) and records the audit event atomically.
	Add(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32, meta AttachmentMeta) (*domain.Attachment, error)

	// Delete removes the blob best-effort, then the metadata row plus its
	// ATTACHMENT_DELETED event atomically.
	Delete(ctx context.Context, actor domain.Actor, attachmentID int32) error

	List(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32) ([]domain.Attachment, error)

	// Checklist reports which required document kinds are still missing.
	Checklist(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32) (*domain.Checklist, error)
}

type SettingsService interface {
	LandApplicationsOpen(ctx context.Context) (bool, error)
	SetLandApplicationsOpen(ctx context.Context, actor domain.Actor, open bool) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendRegistrationDecisionNotification(ctx context.Context, email, name string, status, reason string) error
	SendApplicationDecisionNotification(ctx context.Context, email, name string, status, reason, lotNumber string) error
	SendStaleReviewDigest(ctx context.Context, adminEmail string, applicationIDs []int32) error
}
