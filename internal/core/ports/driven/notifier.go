package driven

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// Notifier delivers a report to people. Delivery is best-effort: failures
// are reported through the boolean, never as a panic or error.
type Notifier interface {
	// SendReport delivers markdown for repo. A nil or empty recipients slice
	// means the configured default recipients.
	SendReport(ctx context.Context, repo domain.RepoID, markdown string, recipients []string) bool
}
