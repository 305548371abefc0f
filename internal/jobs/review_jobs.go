package jobs

import (
	"context"
	"fmt"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/logger"
)

// SendStaleReviewReminders nudges admins about applications that have sat in
// SUBMITTED or UNDER_REVIEW past the configured threshold, and drops an
// in-app notification for each waiting applicant.
func (jr *JobRunner) SendStaleReviewReminders() {
	jr.runWithRecovery("SendStaleReviewReminders", func() {
		ctx := context.Background()

		stale, err := jr.store.ApplicationRepository.ListStaleInReview(ctx, jr.config.Review.StaleAfterDays)
		if err != nil {
			logger.Error("Failed to list stale applications", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Info("No stale applications found")
			return
		}

		ids := make([]int32, len(stale))
		for i, app := range stale {
			ids[i] = app.ID
		}
		logger.Info("Found stale applications", "count", len(ids), "older_than_days", jr.config.Review.StaleAfterDays)

		if jr.config.Email.AdminEmail != "" {
			if err := jr.email.SendStaleReviewDigest(ctx, jr.config.Email.AdminEmail, ids); err != nil {
				logger.Error("Failed to send stale review digest", "error", err)
			}
		}

		for _, app := range stale {
			note := &domain.Notification{
				UserID:  app.UserID,
				Title:   "Application still in review",
				Message: "Your land application is still being reviewed. We will notify you once a decision is made.",
				Attributes: map[string]string{
					"type":           "APPLICATION_STALE",
					"application_id": fmt.Sprintf("%d", app.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create stale-review notification", "application_id", app.ID, "error", err)
			}
		}
	})
}
