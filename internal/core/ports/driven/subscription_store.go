package driven

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// SubscriptionStore persists the set of subscribed repositories.
type SubscriptionStore interface {
	// List returns subscriptions in the order they were added.
	List(ctx context.Context) ([]domain.RepoID, error)

	// Add subscribes to a repository.
	// Returns domain.ErrAlreadyExists if already subscribed.
	Add(ctx context.Context, repo domain.RepoID) error

	// Remove unsubscribes from a repository.
	// Returns domain.ErrNotFound if not subscribed.
	Remove(ctx context.Context, repo domain.RepoID) error

	// Exists reports whether the repository is subscribed.
	Exists(ctx context.Context, repo domain.RepoID) (bool, error)
}
