package scheduler

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

// Module provides scheduled maintenance tasks.
var Module = fx.Module("scheduler",
	fx.Provide(
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
	Cache     rescache.Cache
	Log       *slog.Logger
	Cfg       *config.Config
}

// RegisterTasks registers all scheduled tasks. An empty sweep schedule
// disables the sweep entirely.
func RegisterTasks(p TaskParams) error {
	if p.Cfg.CacheSweep.Spec == "" {
		p.Log.Info("cache sweep disabled, no schedule configured")
		return nil
	}

	task := NewCacheSweepTask(p.Cache, p.Log)
	if err := p.Scheduler.AddCronTask("result_cache_sweep", p.Cfg.CacheSweep.Spec, task.Run); err != nil {
		return err
	}

	p.Log.Info("registered scheduled tasks",
		slog.Any("tasks", p.Scheduler.ListTasks()))
	return nil
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler, cfg *config.Config) {
	if cfg.CacheSweep.Spec == "" {
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
