package scheduler

import (
	"context"
	"log/slog"

	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

// CacheSweepTask periodically clears the whole result cache. The cache has
// no TTL, so long-running deployments bound staleness with this sweep.
type CacheSweepTask struct {
	cache rescache.Cache
	log   *slog.Logger
}

// NewCacheSweepTask creates a new cache sweep task.
func NewCacheSweepTask(cache rescache.Cache, log *slog.Logger) *CacheSweepTask {
	return &CacheSweepTask{
		cache: cache,
		log:   log.With(logger.Scope("scheduler.cache-sweep")),
	}
}

// Run clears every cached traversal result.
func (t *CacheSweepTask) Run(ctx context.Context) error {
	evicted := t.cache.Len()
	t.cache.Clear()
	t.log.Info("result cache swept", slog.Int("evicted", evicted))
	return nil
}
