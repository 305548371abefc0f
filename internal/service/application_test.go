package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

func newApplicationService(appRepo *MockApplicationRepo, regRepo *MockRegistrationRepo, settingsRepo *MockSettingsRepo, userRepo *MockUserRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService) ApplicationService {
	return NewApplicationService(appRepo, regRepo, new(MockAuditRepo), settingsRepo, userRepo, noteRepo, emailSvc)
}

func TestApplicationService_Start(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: 3, Subject: "mary@portal"}
	commonerID := int32(5)
	approvedReg := &domain.CommonerRegistration{ID: commonerID, UserID: 3, FullName: "Mary Byrne", Status: domain.RegistrationStatusApproved}

	t.Run("RequiresApprovedRegistration", func(t *testing.T) {
		regRepo := new(MockRegistrationRepo)
		svc := newApplicationService(new(MockApplicationRepo), regRepo, new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		regRepo.On("GetByUserID", ctx, actor.UserID).
			Return(&domain.CommonerRegistration{ID: commonerID, UserID: 3, Status: domain.RegistrationStatusPending}, nil)

		_, err := svc.Start(ctx, actor, "grazing", false)
		assert.ErrorIs(t, err, domain.ErrCommonerNotApproved)
	})

	t.Run("MissingRegistrationMapsToNotApproved", func(t *testing.T) {
		regRepo := new(MockRegistrationRepo)
		svc := newApplicationService(new(MockApplicationRepo), regRepo, new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		regRepo.On("GetByUserID", ctx, actor.UserID).Return(nil, domain.ErrNotFound)

		_, err := svc.Start(ctx, actor, "grazing", false)
		assert.ErrorIs(t, err, domain.ErrCommonerNotApproved)
	})

	t.Run("ClosedGateRejects", func(t *testing.T) {
		regRepo := new(MockRegistrationRepo)
		settingsRepo := new(MockSettingsRepo)
		svc := newApplicationService(new(MockApplicationRepo), regRepo, settingsRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		regRepo.On("GetByUserID", ctx, actor.UserID).Return(approvedReg, nil)
		settingsRepo.On("GetBool", ctx, domain.SettingLandApplicationsOpen).Return(false, nil)

		_, err := svc.Start(ctx, actor, "grazing", false)
		assert.ErrorIs(t, err, domain.ErrApplicationsClosed)
	})

	t.Run("CreatesDraftSnapshottingIdentity", func(t *testing.T) {
		regRepo := new(MockRegistrationRepo)
		settingsRepo := new(MockSettingsRepo)
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, regRepo, settingsRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		regRepo.On("GetByUserID", ctx, actor.UserID).Return(approvedReg, nil)
		settingsRepo.On("GetBool", ctx, domain.SettingLandApplicationsOpen).Return(true, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).
			Run(func(args mock.Arguments) {
				app := args.Get(1).(*domain.Application)
				app.ID = 1
				app.Status = domain.ApplicationStatusDraft
			}).Return(nil)

		app, err := svc.Start(ctx, actor, "grazing", true)
		assert.NoError(t, err)
		assert.Equal(t, "Mary Byrne", app.ApplicantName)
		assert.Equal(t, &commonerID, app.CommonerID)
		assert.True(t, app.AlreadyHasLand)
	})

	t.Run("ConcurrentDuplicateResolvesToExisting", func(t *testing.T) {
		regRepo := new(MockRegistrationRepo)
		settingsRepo := new(MockSettingsRepo)
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, regRepo, settingsRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		existing := &domain.Application{ID: 1, UserID: 3, Status: domain.ApplicationStatusDraft}
		regRepo.On("GetByUserID", ctx, actor.UserID).Return(approvedReg, nil)
		settingsRepo.On("GetBool", ctx, domain.SettingLandApplicationsOpen).Return(true, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)
		appRepo.On("GetByUserID", ctx, actor.UserID).Return(existing, nil)

		app, err := svc.Start(ctx, actor, "grazing", false)
		assert.NoError(t, err)
		assert.Equal(t, existing, app)
	})
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerSubmits", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		actor := domain.Actor{UserID: 3, Subject: "mary@portal"}
		appRepo.On("GetByID", ctx, int32(1)).Return(&domain.Application{ID: 1, UserID: 3, Status: domain.ApplicationStatusDraft}, nil)
		appRepo.On("Submit", ctx, int32(1), actor).Return(&domain.Application{ID: 1, UserID: 3, Status: domain.ApplicationStatusSubmitted}, nil)

		app, err := svc.Submit(ctx, actor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusSubmitted, app.Status)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		appRepo.On("GetByID", ctx, int32(1)).Return(&domain.Application{ID: 1, UserID: 3}, nil)

		_, err := svc.Submit(ctx, domain.Actor{UserID: 9}, 1)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestApplicationService_Decide(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: 1, Subject: "admin@parish", Staff: true}

	t.Run("NonStaffForbidden", func(t *testing.T) {
		svc := newApplicationService(new(MockApplicationRepo), new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		_, err := svc.Decide(ctx, domain.Actor{UserID: 3}, 1, domain.ApplicationDecisionApprove, "", "", nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("RejectWithoutReasonFails", func(t *testing.T) {
		svc := newApplicationService(new(MockApplicationRepo), new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		_, err := svc.Decide(ctx, admin, 1, domain.ApplicationDecisionReject, "", "", nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ApproveNotifiesApplicant", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newApplicationService(appRepo, new(MockRegistrationRepo), new(MockSettingsRepo), userRepo, noteRepo, emailSvc)

		lot := "LOT-42"
		approved := &domain.Application{ID: 1, UserID: 3, ApplicantName: "Mary Byrne", Status: domain.ApplicationStatusApproved, LotNumber: &lot}
		appRepo.On("Decide", ctx, repository.DecideApplicationParams{
			ApplicationID: 1,
			Decision:      domain.ApplicationDecisionApprove,
			Actor:         admin,
			LotNumber:     &lot,
		}).Return(approved, nil)
		userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Email: "mary@example.com"}, nil)
		emailSvc.On("SendApplicationDecisionNotification", ctx, "mary@example.com", "Mary Byrne", "APPROVED", "", "LOT-42").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		app, err := svc.Decide(ctx, admin, 1, domain.ApplicationDecisionApprove, "", "", &lot)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApproved, app.Status)
		emailSvc.AssertExpectations(t)
	})

	t.Run("UnderReviewDoesNotNotify", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		emailSvc := new(MockEmailService)
		svc := newApplicationService(appRepo, new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), emailSvc)

		underReview := &domain.Application{ID: 1, UserID: 3, Status: domain.ApplicationStatusUnderReview}
		appRepo.On("Decide", ctx, mock.Anything).Return(underReview, nil)

		_, err := svc.Decide(ctx, admin, 1, domain.ApplicationDecisionUnderReview, "checking", "", nil)
		assert.NoError(t, err)
		emailSvc.AssertNotCalled(t, "SendApplicationDecisionNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplicationService_Reopen(t *testing.T) {
	ctx := context.Background()

	t.Run("NonStaffForbidden", func(t *testing.T) {
		svc := newApplicationService(new(MockApplicationRepo), new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		_, err := svc.Reopen(ctx, domain.Actor{UserID: 3}, 1, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("StaffReopens", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockRegistrationRepo), new(MockSettingsRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		admin := domain.Actor{UserID: 1, Subject: "admin@parish", Staff: true}
		appRepo.On("Reopen", ctx, int32(1), admin, "appeal upheld").
			Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusUnderReview}, nil)

		app, err := svc.Reopen(ctx, admin, 1, "appeal upheld")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
	})
}
