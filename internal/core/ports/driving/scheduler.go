package driving

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// Scheduler runs report cycles on a fixed interval until stopped.
type Scheduler interface {
	// Start runs cycles until Stop is called or ctx is cancelled.
	// Returns domain.ErrSchedulerRunning if already started.
	Start(ctx context.Context) error

	// Stop requests termination. A cycle already in progress completes;
	// a pending sleep is interrupted.
	Stop() error

	// State reports whether the loop is running.
	State() domain.SchedulerState

	// History returns recent cycle results, most recent first.
	History(ctx context.Context, limit int) ([]domain.CycleResult, error)
}
