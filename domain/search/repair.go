package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/internal/config"
	"github.com/reelkeep/reelkeep-core/internal/jobs"
	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
	"github.com/reelkeep/reelkeep-core/pkg/mathutil"
)

const repairMaxAttempts = 5

// RepairQueue schedules deferred reindexes for studios whose synchronous
// index write failed. Enqueue is idempotent: a studio with an active job is
// not queued again.
type RepairQueue struct {
	db    bun.IDB
	queue *jobs.Queue
	log   *slog.Logger
}

// NewRepairQueue creates the index repair queue.
func NewRepairQueue(db bun.IDB, log *slog.Logger) *RepairQueue {
	cfg := jobs.DefaultQueueConfig("media.index_repair_jobs", "studio_id")
	cfg.MaxAttempts = repairMaxAttempts

	return &RepairQueue{
		db:    db,
		queue: jobs.NewQueue(db, cfg, log),
		log:   log.With(logger.Scope("search.repair")),
	}
}

// Enqueue records a pending repair job for the studio unless one is already
// pending or processing.
func (q *RepairQueue) Enqueue(ctx context.Context, studioID string) error {
	query := `
		INSERT INTO media.index_repair_jobs (id, studio_id)
		SELECT ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM media.index_repair_jobs
			WHERE studio_id = ? AND status IN ('pending', 'processing')
		)`

	if _, err := q.db.NewRaw(query, uuid.NewString(), studioID, studioID).Exec(ctx); err != nil {
		q.log.Error("failed to enqueue index repair", slog.String("studio_id", studioID), logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// processBatch claims a batch of repair jobs and reindexes each studio.
func (q *RepairQueue) processBatch(ctx context.Context, repo *Repository, w *jobs.Worker, batchSize int) error {
	ids, err := q.queue.Dequeue(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, jobID := range ids {
		var job RepairJob
		if err := q.queue.GetJobByID(ctx, jobID, &job); err != nil {
			w.IncrementFailure()
			if ferr := q.queue.MarkFailed(ctx, jobID, 0, err.Error()); ferr != nil {
				q.log.Error("failed to mark repair job failed", slog.String("job_id", jobID), logger.Error(ferr))
			}
			continue
		}

		if err := repo.IndexStudio(ctx, job.StudioID); err != nil {
			w.IncrementFailure()
			if ferr := q.queue.MarkFailed(ctx, jobID, job.AttemptCount, err.Error()); ferr != nil {
				q.log.Error("failed to mark repair job failed", slog.String("job_id", jobID), logger.Error(ferr))
			}
			continue
		}

		if err := q.queue.MarkCompleted(ctx, jobID); err != nil {
			q.log.Error("failed to mark repair job completed", slog.String("job_id", jobID), logger.Error(err))
		}
		w.IncrementSuccess()
	}

	return nil
}

// RegisterRepairWorker starts the background repair worker with the fx
// lifecycle.
func RegisterRepairWorker(lc fx.Lifecycle, q *RepairQueue, repo *Repository, cfg *config.Config, log *slog.Logger) {
	if cfg.Index.SweepDisabled {
		log.Info("index maintenance disabled, repair worker not started")
		return
	}

	wcfg := jobs.DefaultWorkerConfig("index-repair")
	wcfg.PollInterval = cfg.Index.RepairInterval
	wcfg.BatchSize = mathutil.ClampInt(cfg.Index.RepairBatchSize, 1, 100)

	var worker *jobs.Worker
	worker = jobs.NewWorker(wcfg, log, func(ctx context.Context) error {
		return q.processBatch(ctx, repo, worker, wcfg.BatchSize)
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if wcfg.RecoverStaleOnStart {
				if n, err := q.queue.RecoverStaleJobs(ctx, wcfg.StaleThresholdMinutes); err != nil {
					return fmt.Errorf("recover stale repair jobs: %w", err)
				} else if n > 0 {
					log.Info("recovered stale index repair jobs", slog.Int("count", n))
				}
			}
			return worker.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return worker.Stop(ctx)
		},
	})
}
