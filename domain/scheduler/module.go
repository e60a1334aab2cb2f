package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"

	appconfig "github.com/reelkeep/reelkeep-core/internal/config"

	"github.com/reelkeep/reelkeep-core/domain/search"
)

// Module provides scheduled task functionality
var Module = fx.Module("scheduler",
	fx.Provide(
		NewConfig,
		NewScheduler,
	),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Search    *search.Service
	DB        *bun.DB
	Log       *slog.Logger
	Cfg       *Config
	App       *appconfig.Config
}

// RegisterTasks registers all scheduled tasks
func RegisterTasks(p TaskParams) error {
	if !p.Cfg.Enabled {
		p.Log.Info("scheduler disabled, skipping task registration")
		return nil
	}

	// Register the index reconcile sweep
	if p.App.Index.SweepDisabled {
		p.Log.Info("index reconcile sweep disabled")
	} else {
		reconcileTask := NewIndexReconcileTask(p.Search, p.App.Index.RepairBatchSize, p.Log)
		if err := p.Scheduler.AddCronTask("index_reconcile",
			p.App.Index.SweepSchedule, reconcileTask.Run); err != nil {
			p.Log.Error("failed to register index reconcile task",
				slog.String("error", err.Error()))
		}
	}

	// Register stale repair job recovery
	staleTask := NewStaleRepairCleanupTask(p.DB, p.Log, p.Cfg.StaleRepairMinutes)
	if err := addScheduledTask(p.Scheduler, p.Log, "stale_repair_cleanup",
		p.Cfg.StaleRepairSchedule, p.Cfg.StaleRepairInterval, staleTask.Run); err != nil {
		p.Log.Error("failed to register stale repair cleanup task",
			slog.String("error", err.Error()))
	}

	p.Log.Info("registered scheduled tasks",
		slog.Any("tasks", p.Scheduler.ListTasks()))

	return nil
}

// addScheduledTask registers a task with a cron schedule when one is set,
// falling back to a fixed interval otherwise.
func addScheduledTask(s *Scheduler, log *slog.Logger, name, schedule string, interval time.Duration, task TaskFunc) error {
	if schedule != "" {
		return s.AddCronTask(name, schedule, task)
	}
	return s.AddIntervalTask(name, interval, task)
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler, cfg *Config) {
	if !cfg.Enabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
