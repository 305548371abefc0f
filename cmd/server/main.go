package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "commonage-backend/internal/api/http"
	"commonage-backend/internal/config"
	"commonage-backend/internal/logger"
	"commonage-backend/internal/repository/postgres"
	"commonage-backend/internal/security"
	"commonage-backend/internal/service"
	"commonage-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Commonage Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Initialize Storage Service
	var blobStore storage.Interface
	var mockStorage *storage.MockStorageService
	switch cfg.Storage.Type {
	case "", "mock":
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		blobStore = mockStorage
	case "firebase":
		logger.Info("Using firebase storage", "bucket", cfg.Storage.Bucket)
		firebaseStorage, err := storage.NewFirebaseStorageService(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase storage", "error", err)
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
		blobStore = firebaseStorage
	default:
		log.Fatalf("Unsupported storage type: %s", cfg.Storage.Type)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	registrationSvc := service.NewRegistrationService(
		store.RegistrationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	applicationSvc := service.NewApplicationService(
		store.ApplicationRepository,
		store.RegistrationRepository,
		store.AuditRepository,
		store.SettingsRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	attachmentSvc := service.NewAttachmentService(
		store.AttachmentRepository,
		store.RegistrationRepository,
		store.ApplicationRepository,
		blobStore,
	)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP router
	router := httpapi.NewRouter(httpapi.RouterConfig{
		TokenManager:    tokenManager,
		UserRepo:        store.UserRepository,
		RegistrationSvc: registrationSvc,
		ApplicationSvc:  applicationSvc,
		AttachmentSvc:   attachmentSvc,
		SettingsSvc:     settingsSvc,
		NotificationSvc: notificationSvc,
		MockStorage:     mockStorage,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
