package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/domain/search"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// IndexReconcileTask runs the search index reconcile sweep: orphaned index
// entries are dropped and stale or missing entries are rebuilt.
type IndexReconcileTask struct {
	svc       *search.Service
	batchSize int
	log       *slog.Logger
}

// NewIndexReconcileTask creates a new index reconcile task
func NewIndexReconcileTask(svc *search.Service, batchSize int, log *slog.Logger) *IndexReconcileTask {
	return &IndexReconcileTask{
		svc:       svc,
		batchSize: batchSize,
		log:       log.With(logger.Scope("scheduler.index_reconcile")),
	}
}

// Run executes the reconcile sweep
func (t *IndexReconcileTask) Run(ctx context.Context) error {
	start := time.Now()
	t.log.Debug("reconciling studio search index")

	if err := t.svc.Reconcile(ctx, t.batchSize); err != nil {
		t.log.Error("index reconcile failed", logger.Error(err))
		return err
	}

	t.log.Debug("index reconcile completed",
		slog.Duration("duration", time.Since(start)))
	return nil
}

// StaleRepairCleanupTask releases index repair jobs stuck in 'processing',
// typically left behind by a crashed worker, so they can be claimed again.
type StaleRepairCleanupTask struct {
	db           *bun.DB
	log          *slog.Logger
	staleMinutes int
	mu           sync.RWMutex
}

// NewStaleRepairCleanupTask creates a new stale repair cleanup task
func NewStaleRepairCleanupTask(db *bun.DB, log *slog.Logger, staleMinutes int) *StaleRepairCleanupTask {
	if staleMinutes <= 0 {
		staleMinutes = 30
	}
	return &StaleRepairCleanupTask{
		db:           db,
		log:          log.With(logger.Scope("scheduler.stale_repair")),
		staleMinutes: staleMinutes,
	}
}

// SetStaleMinutes updates the stale threshold at runtime.
func (t *StaleRepairCleanupTask) SetStaleMinutes(minutes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staleMinutes = minutes
}

// GetStaleMinutes returns the current stale threshold.
func (t *StaleRepairCleanupTask) GetStaleMinutes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.staleMinutes
}

// Run executes the stale repair cleanup
func (t *StaleRepairCleanupTask) Run(ctx context.Context) error {
	start := time.Now()
	t.log.Debug("recovering stale index repair jobs")

	t.mu.RLock()
	staleMinutes := t.staleMinutes
	t.mu.RUnlock()

	cutoff := time.Now().Add(-time.Duration(staleMinutes) * time.Minute)

	result, err := t.db.ExecContext(ctx, `
		UPDATE media.index_repair_jobs
		SET status = 'pending',
			started_at = NULL,
			scheduled_at = now(),
			updated_at = now()
		WHERE status = 'processing'
		AND started_at < ?
	`, cutoff)
	if err != nil {
		t.log.Error("failed to recover stale repair jobs", logger.Error(err))
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		t.log.Info("recovered stale repair jobs",
			slog.Int64("count", rowsAffected),
			slog.Duration("duration", time.Since(start)))
	} else {
		t.log.Debug("no stale repair jobs",
			slog.Duration("duration", time.Since(start)))
	}

	return nil
}
