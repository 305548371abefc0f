package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
)

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, reg *domain.CommonerRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegistrationRepo) GetByID(ctx context.Context, id int32) (*domain.CommonerRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommonerRegistration), args.Error(1)
}
func (m *MockRegistrationRepo) GetByUserID(ctx context.Context, userID int32) (*domain.CommonerRegistration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommonerRegistration), args.Error(1)
}
func (m *MockRegistrationRepo) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.CommonerRegistration, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.CommonerRegistration), args.Error(1)
}
func (m *MockRegistrationRepo) Decide(ctx context.Context, p repository.DecideRegistrationParams) (*domain.CommonerRegistration, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommonerRegistration), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListStaleInReview(ctx context.Context, olderThanDays int) ([]domain.Application, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Submit(ctx context.Context, id int32, actor domain.Actor) (*domain.Application, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Decide(ctx context.Context, p repository.DecideApplicationParams) (*domain.Application, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Reopen(ctx context.Context, id int32, actor domain.Actor, note string) (*domain.Application, error) {
	args := m.Called(ctx, id, actor, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

// MockAttachmentRepo
type MockAttachmentRepo struct {
	mock.Mock
}

func (m *MockAttachmentRepo) Create(ctx context.Context, att *domain.Attachment, event *domain.AdminEvent) error {
	args := m.Called(ctx, att, event)
	return args.Error(0)
}
func (m *MockAttachmentRepo) GetByID(ctx context.Context, id int32) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}
func (m *MockAttachmentRepo) ListByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.Attachment, error) {
	args := m.Called(ctx, owner, ownerID)
	return args.Get(0).([]domain.Attachment), args.Error(1)
}
func (m *MockAttachmentRepo) ListKindsByOwner(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.AttachmentKind, error) {
	args := m.Called(ctx, owner, ownerID)
	return args.Get(0).([]domain.AttachmentKind), args.Error(1)
}
func (m *MockAttachmentRepo) Delete(ctx context.Context, id int32, event *domain.AdminEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}
func (m *MockAttachmentRepo) ListStorageKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) GetBool(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
func (m *MockSettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) ListStatusLogs(ctx context.Context, owner domain.OwnerKind, ownerID int32) ([]domain.StatusLog, error) {
	args := m.Called(ctx, owner, ownerID)
	return args.Get(0).([]domain.StatusLog), args.Error(1)
}
func (m *MockAuditRepo) ListAdminEvents(ctx context.Context, applicationID int32) ([]domain.AdminEvent, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.AdminEvent), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationDecisionNotification(ctx context.Context, email, name, status, reason string) error {
	args := m.Called(ctx, email, name, status, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationDecisionNotification(ctx context.Context, email, name, status, reason, lotNumber string) error {
	args := m.Called(ctx, email, name, status, reason, lotNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendStaleReviewDigest(ctx context.Context, adminEmail string, applicationIDs []int32) error {
	args := m.Called(ctx, adminEmail, applicationIDs)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
