// Package rescache is the process-wide result cache for expensive traversals
// (pedigrees, descendant trees, notable-relative scans).
//
// Entries have no TTL and no size bound: cached values are derived and
// recomputable, never source of truth, and correctness relies on callers
// invalidating on writes that change cached shapes. Clear supports whole-cache
// and substring-pattern invalidation.
package rescache

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

var Module = fx.Module("rescache",
	fx.Provide(
		New,
		fx.Annotate(
			func(c *Memory) Cache { return c },
			fx.As(new(Cache)),
		),
	),
)

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kingraph_rescache_hits_total",
		Help: "Result cache lookups that found an entry",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kingraph_rescache_misses_total",
		Help: "Result cache lookups that found nothing",
	})
	entries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kingraph_rescache_entries",
		Help: "Current number of result cache entries",
	})
)

// Cache is the injectable cache surface. Production and tests both use the
// in-memory implementation; the interface keeps invalidation rules
// unit-testable and leaves room for a shared backend.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	// Clear empties the whole cache when called without arguments, or removes
	// only keys containing any of the given substrings.
	Clear(patterns ...string)
	Len() int
}

// Memory is the in-memory Cache implementation: a mutex-guarded map.
// Concurrent writes to the same key are last-write-wins.
type Memory struct {
	mu sync.RWMutex
	m  map[string]any
}

// New creates an empty in-memory cache.
func New() *Memory {
	return &Memory{m: make(map[string]any)}
}

func (c *Memory) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()

	if ok {
		hits.Inc()
	} else {
		misses.Inc()
	}
	return v, ok
}

func (c *Memory) Set(key string, value any) {
	c.mu.Lock()
	c.m[key] = value
	entries.Set(float64(len(c.m)))
	c.mu.Unlock()
}

func (c *Memory) Clear(patterns ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(patterns) == 0 {
		c.m = make(map[string]any)
		entries.Set(0)
		return
	}

	for key := range c.m {
		for _, p := range patterns {
			if strings.Contains(key, p) {
				delete(c.m, key)
				break
			}
		}
	}
	entries.Set(float64(len(c.m)))
}

func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
