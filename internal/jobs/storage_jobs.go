package jobs

import (
	"context"

	"commonage-backend/internal/logger"
)

// SweepAbandonedUploads deletes blobs that were uploaded through a presigned
// URL but never confirmed as attachment metadata. The metadata row is the
// source of truth; a blob without one is garbage. Scheduled in an off-hours
// window so the upload-then-confirm gap of live requests is not in flight.
func (jr *JobRunner) SweepAbandonedUploads() {
	jr.runWithRecovery("SweepAbandonedUploads", func() {
		ctx := context.Background()

		stored, err := jr.storage.ListKeys(ctx)
		if err != nil {
			logger.Error("Failed to list stored blobs", "error", err)
			return
		}

		confirmed, err := jr.store.AttachmentRepository.ListStorageKeys(ctx)
		if err != nil {
			logger.Error("Failed to list attachment storage keys", "error", err)
			return
		}
		known := make(map[string]bool, len(confirmed))
		for _, key := range confirmed {
			known[key] = true
		}

		deleted := 0
		for _, key := range stored {
			if known[key] {
				continue
			}
			if err := jr.storage.DeleteFile(ctx, key); err != nil {
				logger.Error("Failed to delete abandoned blob", "key", key, "error", err)
				continue
			}
			logger.Debug("Deleted abandoned blob", "key", key)
			deleted++
		}

		logger.Info("Abandoned upload sweep finished", "stored", len(stored), "deleted", deleted)
	})
}
