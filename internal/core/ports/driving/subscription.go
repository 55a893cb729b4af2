package driving

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// SubscriptionService manages the set of watched repositories.
type SubscriptionService interface {
	// Subscribe validates and adds a repository ("owner/name" or a GitHub URL).
	Subscribe(ctx context.Context, raw string) (domain.RepoID, error)

	// Unsubscribe removes a repository.
	Unsubscribe(ctx context.Context, raw string) (domain.RepoID, error)

	// List returns subscribed repositories.
	List(ctx context.Context) ([]domain.RepoID, error)
}
