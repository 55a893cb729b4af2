package domain

import "time"

// Default scheduler timings.
const (
	DefaultSchedulerInterval = 24 * time.Hour
	DefaultErrorBackoff      = time.Minute
)

// SchedulerState is the loop's lifecycle state.
type SchedulerState string

// Scheduler states.
const (
	SchedulerStopped SchedulerState = "stopped"
	SchedulerRunning SchedulerState = "running"
)

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Interval is the sleep between successful cycles.
	Interval time.Duration

	// ErrorBackoff is the sleep after a failed cycle. Shorter than Interval.
	ErrorBackoff time.Duration

	// Summarize enables LLM summaries for scheduled reports.
	Summarize bool
}

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:     DefaultSchedulerInterval,
		ErrorBackoff: DefaultErrorBackoff,
	}
}

// Normalised fills zero values with defaults and clamps ErrorBackoff to
// never exceed Interval.
func (c SchedulerConfig) Normalised() SchedulerConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultSchedulerInterval
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = DefaultErrorBackoff
	}
	if c.ErrorBackoff > c.Interval {
		c.ErrorBackoff = c.Interval
	}
	return c
}

// CycleResult represents the outcome of one scheduler cycle.
type CycleResult struct {
	// ID uniquely identifies the cycle.
	ID string

	// StartedAt is when the cycle started.
	StartedAt time.Time

	// EndedAt is when the cycle completed.
	EndedAt time.Time

	// ReposChecked is the number of subscriptions fetched.
	ReposChecked int

	// ReportsDelivered is the number of reports saved or sent.
	ReportsDelivered int

	// Success indicates whether the cycle completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string
}

// Duration returns how long the cycle took.
func (r CycleResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
