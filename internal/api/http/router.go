package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"commonage-backend/internal/repository"
	"commonage-backend/internal/security"
	"commonage-backend/internal/service"
	"commonage-backend/internal/storage"
)

// RouterConfig bundles everything the HTTP surface depends on.
type RouterConfig struct {
	TokenManager    security.TokenManager
	UserRepo        repository.UserRepository
	RegistrationSvc service.RegistrationService
	ApplicationSvc  service.ApplicationService
	AttachmentSvc   service.AttachmentService
	SettingsSvc     service.SettingsService
	NotificationSvc service.NotificationService

	// MockStorage, when set, mounts the local upload/download endpoints that
	// back the mock presigned URLs.
	MockStorage *storage.MockStorageService
}

func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	if cfg.MockStorage != nil {
		uploads := NewDocumentUploadHandler(cfg.MockStorage)
		router.HandleFunc("/api/v1/upload/{token}", uploads.HandleUpload).Methods(http.MethodPut)
		router.HandleFunc("/api/v1/download/{key:.*}", uploads.HandleDownload).Methods(http.MethodGet)
	}

	registrations := NewRegistrationHandler(cfg.RegistrationSvc, cfg.AttachmentSvc)
	applications := NewApplicationHandler(cfg.ApplicationSvc, cfg.AttachmentSvc)
	attachments := NewAttachmentHandler(cfg.AttachmentSvc)
	settings := NewSettingsHandler(cfg.SettingsSvc)
	notifications := NewNotificationHandler(cfg.NotificationSvc)

	auth := NewAuthMiddleware(cfg.TokenManager, cfg.UserRepo)
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Authenticate)

	api.HandleFunc("/registrations", registrations.Create).Methods(http.MethodPost)
	api.HandleFunc("/registrations/me", registrations.GetMine).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{id}/checklist", registrations.Checklist).Methods(http.MethodGet)

	api.HandleFunc("/applications", applications.Start).Methods(http.MethodPost)
	api.HandleFunc("/applications/me", applications.GetMine).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/submit", applications.Submit).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/checklist", applications.Checklist).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/history", applications.History).Methods(http.MethodGet)

	api.HandleFunc("/attachments/upload-url", attachments.UploadURL).Methods(http.MethodPost)
	api.HandleFunc("/attachments", attachments.Add).Methods(http.MethodPost)
	api.HandleFunc("/attachments", attachments.List).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}", attachments.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/registrations", requireStaff(registrations.List)).Methods(http.MethodGet)
	admin.HandleFunc("/registrations/{id}/decision", requireStaff(registrations.Decide)).Methods(http.MethodPost)
	admin.HandleFunc("/applications", requireStaff(applications.List)).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}/decision", requireStaff(applications.Decide)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/reopen", requireStaff(applications.Reopen)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/events", requireStaff(applications.Events)).Methods(http.MethodGet)
	admin.HandleFunc("/settings/land-applications", requireStaff(settings.GetLandApplications)).Methods(http.MethodGet)
	admin.HandleFunc("/settings/land-applications", requireStaff(settings.SetLandApplications)).Methods(http.MethodPut)

	return router
}
