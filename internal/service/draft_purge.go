package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

const purgeInterval = 15 * time.Minute

var draftPurgeMu sync.Mutex

// RunDraftPurgeOnce deletes expired AI product drafts. Logs and moves on;
// a failed purge just leaves rows for the next tick.
func RunDraftPurgeOnce(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) {
	deleted, err := repos.ProductDraft.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("Draft purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info("Purged expired drafts", zap.Int64("deleted", deleted))
	}
}

// RunDraftPurgeLoop purges once, then every purgeInterval. Call from a goroutine.
func RunDraftPurgeLoop(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) {
	draftPurgeMu.Lock()
	RunDraftPurgeOnce(ctx, repos, logger)
	draftPurgeMu.Unlock()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			draftPurgeMu.Lock()
			RunDraftPurgeOnce(ctx, repos, logger)
			draftPurgeMu.Unlock()
		}
	}
}
