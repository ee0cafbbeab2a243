package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingraph-app/kingraph/pkg/rescache"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerTaskRegistration(t *testing.T) {
	s := NewScheduler(discard())

	require.NoError(t, s.AddCronTask("sweep", "*/5 * * * *", func(ctx context.Context) error { return nil }))
	assert.Equal(t, []string{"sweep"}, s.ListTasks())

	// Re-adding replaces rather than duplicates.
	require.NoError(t, s.AddCronTask("sweep", "0 * * * *", func(ctx context.Context) error { return nil }))
	assert.Len(t, s.ListTasks(), 1)

	s.RemoveTask("sweep")
	assert.Empty(t, s.ListTasks())
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(discard())
	err := s.AddCronTask("sweep", "not-a-schedule", func(ctx context.Context) error { return nil })
	require.Error(t, err)
}

func TestCacheSweepTask(t *testing.T) {
	cache := rescache.New()
	cache.Set("pedigree:p1:3", 1)
	cache.Set("notable:p1", 2)

	task := NewCacheSweepTask(cache, discard())
	require.NoError(t, task.Run(context.Background()))
	assert.Zero(t, cache.Len())
}
