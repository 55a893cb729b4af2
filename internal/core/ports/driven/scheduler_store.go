package driven

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// SchedulerStore persists scheduler cycle history.
type SchedulerStore interface {
	// RecordResult logs a cycle result.
	RecordResult(ctx context.Context, result *domain.CycleResult) error

	// History returns recent results, most recent first.
	History(ctx context.Context, limit int) ([]domain.CycleResult, error)

	// PruneHistory keeps only the most recent 'keep' results.
	PruneHistory(ctx context.Context, keep int) error
}
