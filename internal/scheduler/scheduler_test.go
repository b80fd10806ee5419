package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-fines-backend/internal/config"
	"traffic-fines-backend/internal/jobs"
)

func newRunner(schedule string) *jobs.JobRunner {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{Reconcile: schedule}}
	return jobs.NewJobRunner(&jobs.Services{}, cfg)
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers reconciliation", func(t *testing.T) {
		s := NewScheduler(newRunner("0 0 * * * *"))
		assert.True(t, s.IsRunning())

		next, ok := s.NextRun()
		require.True(t, ok)
		assert.Equal(t, 0, next.Minute())
		assert.Equal(t, 0, next.Second())
		assert.Equal(t, time.UTC, next.Location())
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		s := NewScheduler(newRunner("every hour"))
		assert.False(t, s.IsRunning())
		_, ok := s.NextRun()
		assert.False(t, ok)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(newRunner("0 0 3 * * *"))
	s.Start()
	s.Stop()
	assert.True(t, s.IsRunning())
}
