package jobs

import (
	"commonage-backend/internal/config"
	"commonage-backend/internal/logger"
	"commonage-backend/internal/repository/postgres"
	"commonage-backend/internal/service"
	"commonage-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store   *postgres.Store
	email   service.EmailService
	storage storage.Interface
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, email service.EmailService, blobStore storage.Interface, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:   store,
		email:   email,
		storage: blobStore,
		config:  cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendStaleReviewReminders()
	jr.SweepAbandonedUploads()
}
