package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

type applicationService struct {
	appRepo      repository.ApplicationRepository
	regRepo      repository.RegistrationRepository
	auditRepo    repository.AuditRepository
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	regRepo repository.RegistrationRepository,
	auditRepo repository.AuditRepository,
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ApplicationService {
	return &applicationService{
		appRepo:      appRepo,
		regRepo:      regRepo,
		auditRepo:    auditRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

func (s *applicationService) Start(ctx context.Context, actor domain.Actor, purpose string, alreadyHasLand bool) (*domain.Application, error) {
	reg, err := s.regRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCommonerNotApproved
		}
		return nil, err
	}
	if reg.Status != domain.RegistrationStatusApproved {
		return nil, domain.ErrCommonerNotApproved
	}

	open, err := s.settingsRepo.GetBool(ctx, domain.SettingLandApplicationsOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to read land applications flag: %w", err)
	}
	if !open {
		return nil, domain.ErrApplicationsClosed
	}

	app := &domain.Application{
		UserID:         actor.UserID,
		CommonerID:     &reg.ID,
		ApplicantName:  reg.FullName,
		Purpose:        purpose,
		AlreadyHasLand: alreadyHasLand,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		// One application per user; a concurrent duplicate create
		// resolves to the row that won the unique constraint.
		if errors.Is(err, domain.ErrConflict) {
			return s.appRepo.GetByUserID(ctx, actor.UserID)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

func (s *applicationService) GetMine(ctx context.Context, actor domain.Actor) (*domain.Application, error) {
	return s.appRepo.GetByUserID(ctx, actor.UserID)
}

func (s *applicationService) Get(ctx context.Context, actor domain.Actor, id int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && app.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, actor domain.Actor, status domain.ApplicationStatus) ([]domain.Application, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	return s.appRepo.ListByStatus(ctx, status)
}

// Submit does not require document completeness; that gate runs at admin
// approval time. The checklist endpoint is the applicant's signal.
func (s *applicationService) Submit(ctx context.Context, actor domain.Actor, id int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && app.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return s.appRepo.Submit(ctx, id, actor)
}

func (s *applicationService) Decide(ctx context.Context, actor domain.Actor, id int32, decision domain.ApplicationDecision, adminNote, rejectionReason string, lotNumber *string) (*domain.Application, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	if decision == domain.ApplicationDecisionReject && strings.TrimSpace(rejectionReason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}

	app, err := s.appRepo.Decide(ctx, repository.DecideApplicationParams{
		ApplicationID:   id,
		Decision:        decision,
		Actor:           actor,
		AdminNote:       adminNote,
		RejectionReason: rejectionReason,
		LotNumber:       lotNumber,
	})
	if err != nil {
		return nil, err
	}

	if app.Status == domain.ApplicationStatusApproved || app.Status == domain.ApplicationStatusRejected {
		s.notifyDecision(ctx, app, rejectionReason)
	}
	return app, nil
}

func (s *applicationService) Reopen(ctx context.Context, actor domain.Actor, id int32, note string) (*domain.Application, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	return s.appRepo.Reopen(ctx, id, actor, note)
}

func (s *applicationService) History(ctx context.Context, actor domain.Actor, id int32) ([]domain.StatusLog, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && app.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return s.auditRepo.ListStatusLogs(ctx, domain.OwnerKindApplication, id)
}

func (s *applicationService) Events(ctx context.Context, actor domain.Actor, id int32) ([]domain.AdminEvent, error) {
	if !actor.Staff {
		return nil, domain.ErrForbidden
	}
	if _, err := s.appRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.auditRepo.ListAdminEvents(ctx, id)
}

// notifyDecision is best effort; the decision already committed.
func (s *applicationService) notifyDecision(ctx context.Context, app *domain.Application, rejectionReason string) {
	user, err := s.userRepo.GetByID(ctx, app.UserID)
	if err != nil {
		return
	}

	lotNumber := ""
	if app.LotNumber != nil {
		lotNumber = *app.LotNumber
	}
	_ = s.emailSvc.SendApplicationDecisionNotification(ctx, user.Email, app.ApplicantName, string(app.Status), rejectionReason, lotNumber)

	notif := &domain.Notification{
		UserID:  user.ID,
		Title:   "Application " + strings.ToLower(string(app.Status)),
		Message: fmt.Sprintf("Your land application was %s", strings.ToLower(string(app.Status))),
		Attributes: map[string]string{
			"type":           "APPLICATION_DECIDED",
			"application_id": fmt.Sprintf("%d", app.ID),
			"status":         string(app.Status),
		},
	}
	_ = s.noteRepo.Create(ctx, notif)
}
