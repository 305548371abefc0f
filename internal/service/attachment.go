package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/logger"
	"commonage-backend/internal/repository"
	"commonage-backend/internal/storage"
)

type attachmentService struct {
	attRepo repository.AttachmentRepository
	regRepo repository.RegistrationRepository
	appRepo repository.ApplicationRepository
	store   storage.Interface
}

func NewAttachmentService(
	attRepo repository.AttachmentRepository,
	regRepo repository.RegistrationRepository,
	appRepo repository.ApplicationRepository,
	store storage.Interface,
) AttachmentService {
	return &attachmentService{
		attRepo: attRepo,
		regRepo: regRepo,
		appRepo: appRepo,
		store:   store,
	}
}

// ownerUserID resolves which user owns the target entity. Ownership is an
// explicit predicate here, never inferred from query shape.
func (s *attachmentService) ownerUserID(ctx context.Context, owner domain.OwnerKind, ownerID int32) (int32, error) {
	switch owner {
	case domain.OwnerKindCommoner:
		reg, err := s.regRepo.GetByID(ctx, ownerID)
		if err != nil {
			return 0, err
		}
		return reg.UserID, nil
	case domain.OwnerKindApplication:
		app, err := s.appRepo.GetByID(ctx, ownerID)
		if err != nil {
			return 0, err
		}
		return app.UserID, nil
	}
	return 0, fmt.Errorf("%w: unknown owner kind %q", domain.ErrValidation, owner)
}

func (s *attachmentService) authorizeOwner(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32) error {
	userID, err := s.ownerUserID(ctx, owner, ownerID)
	if err != nil {
		return err
	}
	if !actor.Staff && userID != actor.UserID {
		return domain.ErrOwnershipMismatch
	}
	return nil
}

const uploadURLExpiry = 15 * time.Minute

func (s *attachmentService) UploadURL(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32, filename, contentType string) (string, string, error) {
	if err := s.authorizeOwner(ctx, actor, owner, ownerID); err != nil {
		return "", "", err
	}

	key := fmt.Sprintf("%s/%d/%s%s", strings.ToLower(string(owner)), ownerID, uuid.New().String(), path.Ext(filename))
	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return uploadURL, key, nil
}

func (s *attachmentService) Add(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32, meta AttachmentMeta) (*domain.Attachment, error) {
	if meta.Kind == "" {
		return nil, fmt.Errorf("%w: attachment kind is required", domain.ErrValidation)
	}
	if err := s.authorizeOwner(ctx, actor, owner, ownerID); err != nil {
		return nil, err
	}

	att := &domain.Attachment{
		Kind:        meta.Kind,
		Label:       meta.Label,
		URL:         meta.URL,
		StorageKey:  meta.StorageKey,
		ContentType: meta.ContentType,
		SizeBytes:   meta.SizeBytes,
		UploadedBy:  actor.UserID,
	}
	switch owner {
	case domain.OwnerKindCommoner:
		att.CommonerID = &ownerID
	case domain.OwnerKindApplication:
		att.ApplicationID = &ownerID
	}

	event := &domain.AdminEvent{
		CommonerID:    att.CommonerID,
		ApplicationID: att.ApplicationID,
		Type:          domain.AdminEventAttachmentAdded,
		Message:       fmt.Sprintf("attachment %s added", meta.Kind),
		ActorSubject:  actor.Subject,
		Meta: map[string]any{
			"kind":         string(meta.Kind),
			"url":          meta.URL,
			"size_bytes":   meta.SizeBytes,
			"content_type": meta.ContentType,
		},
	}
	if err := s.attRepo.Create(ctx, att, event); err != nil {
		return nil, fmt.Errorf("failed to persist attachment: %w", err)
	}
	return att, nil
}

func (s *attachmentService) Delete(ctx context.Context, actor domain.Actor, attachmentID int32) error {
	att, err := s.attRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	ownerKind, ownerID := att.Owner()
	if err := s.authorizeOwner(ctx, actor, ownerKind, ownerID); err != nil {
		return err
	}

	// Blob first, best effort: the metadata row is the source of truth, a
	// failed blob delete must not abort the audit-logged removal.
	if att.StorageKey != "" {
		if err := s.store.DeleteFile(ctx, att.StorageKey); err != nil {
			logger.Warn("blob delete failed, continuing with metadata delete",
				"attachment_id", att.ID, "storage_key", att.StorageKey, "error", err)
		}
	}

	event := &domain.AdminEvent{
		CommonerID:    att.CommonerID,
		ApplicationID: att.ApplicationID,
		Type:          domain.AdminEventAttachmentDeleted,
		Message:       fmt.Sprintf("attachment %s deleted", att.Kind),
		ActorSubject:  actor.Subject,
		// Full metadata snapshot: the row is gone after this commit, the
		// event is what audit replay reads.
		Meta: map[string]any{
			"attachment_id": att.ID,
			"kind":          string(att.Kind),
			"url":           att.URL,
			"storage_key":   att.StorageKey,
			"size_bytes":    att.SizeBytes,
			"content_type":  att.ContentType,
			"owner_kind":    string(ownerKind),
			"owner_id":      ownerID,
		},
	}
	return s.attRepo.Delete(ctx, att.ID, event)
}

func (s *attachmentService) List(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32) ([]domain.Attachment, error) {
	if err := s.authorizeOwner(ctx, actor, owner, ownerID); err != nil {
		return nil, err
	}
	return s.attRepo.ListByOwner(ctx, owner, ownerID)
}

func (s *attachmentService) Checklist(ctx context.Context, actor domain.Actor, owner domain.OwnerKind, ownerID int32) (*domain.Checklist, error) {
	if err := s.authorizeOwner(ctx, actor, owner, ownerID); err != nil {
		return nil, err
	}

	alreadyHasLand := false
	if owner == domain.OwnerKindApplication {
		app, err := s.appRepo.GetByID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		alreadyHasLand = app.AlreadyHasLand
	}

	kinds, err := s.attRepo.ListKindsByOwner(ctx, owner, ownerID)
	if err != nil {
		return nil, err
	}
	checklist := domain.ResolveChecklist(domain.RequiredKinds(owner, alreadyHasLand), kinds)
	return &checklist, nil
}
