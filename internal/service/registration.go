package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type registrationService struct {
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RegistrationService {
	return &registrationService{
		regRepo:  regRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func (s *registrationService) Register(ctx context.Context, actor domain.Actor, fullName, nationalID string) (*domain.CommonerRegistration, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}

	reg := &domain.CommonerRegistration{
		UserID:     actor.UserID,
		FullName:   fullName,
		NationalID: nationalID,
	}
	err := s.regRepo.Create(ctx, reg)
	if err != nil {
		// The unique constraint on user_id is the concurrency guard;
		// a duplicate create resolves to the row that won.
		if errors.Is(err, domain.ErrConflict) {
			return s.regRepo.GetByUserID(ctx, actor.UserID)
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) GetMine(ctx context.Context, actor domain.Actor) (*domain.CommonerRegistration, error) {
	return s.regRepo.GetByUserID(ctx, actor.UserID)
}

func (s *registrationService) List(ctx context.Context, actor domain.Actor, status domain.RegistrationStatus) ([]domain.CommonerRegistration, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	return s.regRepo.ListByStatus(ctx, status)
}

func (s *registrationService) Decide(ctx context.Context, actor domain.Actor, registrationID int32, decision domain.RegistrationDecision, note, rejectionReason string) (*domain.CommonerRegistration, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	if decision == domain.RegistrationDecisionReject && strings.TrimSpace(rejectionReason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}

	reg, err := s.regRepo.Decide(ctx, repository.DecideRegistrationParams{
		RegistrationID:  registrationID,
		Decision:        decision,
		Actor:           actor,
		Note:            note,
		RejectionReason: rejectionReason,
	})
	if err != nil {
		return nil, err
	}

	// Notify the applicant. Delivery is best effort; the decision already
	// committed.
	if user, err := s.userRepo.GetByID(ctx, reg.UserID); err == nil {
		_ = s.emailSvc.SendRegistrationDecisionNotification(ctx, user.Email, reg.FullName, string(reg.Status), rejectionReason)

		notif := &domain.Notification{
			UserID:  user.ID,
			Title:   "Registration " + strings.ToLower(string(reg.Status)),
			Message: fmt.Sprintf("Your commoner registration was %s", strings.ToLower(string(reg.Status))),
			Attributes: map[string]string{
				"type":            "REGISTRATION_DECIDED",
				"registration_id": fmt.Sprintf("%d", reg.ID),
				"status":          string(reg.Status),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return reg, nil
}
