package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.Equal(t, 24*time.Hour, config.Interval)
	assert.Equal(t, time.Minute, config.ErrorBackoff)
	assert.False(t, config.Summarize)
}

func TestSchedulerConfig_Normalised(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := SchedulerConfig{}.Normalised()

		assert.Equal(t, DefaultSchedulerInterval, cfg.Interval)
		assert.Equal(t, DefaultErrorBackoff, cfg.ErrorBackoff)
	})

	t.Run("clamps backoff to interval", func(t *testing.T) {
		cfg := SchedulerConfig{Interval: 10 * time.Second, ErrorBackoff: time.Minute}.Normalised()

		assert.Equal(t, 10*time.Second, cfg.ErrorBackoff)
	})

	t.Run("keeps valid values", func(t *testing.T) {
		cfg := SchedulerConfig{Interval: time.Hour, ErrorBackoff: time.Second}.Normalised()

		assert.Equal(t, time.Hour, cfg.Interval)
		assert.Equal(t, time.Second, cfg.ErrorBackoff)
	})
}

func TestCycleResult_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := CycleResult{StartedAt: start, EndedAt: start.Add(90 * time.Second)}

	assert.Equal(t, 90*time.Second, r.Duration())
}
