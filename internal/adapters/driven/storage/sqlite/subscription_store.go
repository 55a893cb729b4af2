package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// subscriptionStore implements driven.SubscriptionStore.
type subscriptionStore struct {
	store *Store
}

var _ driven.SubscriptionStore = (*subscriptionStore)(nil)

// List returns subscriptions in the order they were added.
func (s *subscriptionStore) List(ctx context.Context) ([]domain.RepoID, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT repo FROM subscriptions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	var repos []domain.RepoID //nolint:prealloc // size unknown from query
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		repo, err := domain.ParseRepoID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored subscription %q: %w", raw, err)
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}
	return repos, nil
}

// Add subscribes to a repository.
func (s *subscriptionStore) Add(ctx context.Context, repo domain.RepoID) error {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO subscriptions (repo, added_at) VALUES (?, ?)
		ON CONFLICT(repo) DO NOTHING
	`, repo.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding subscription: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adding subscription: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", repo, domain.ErrAlreadyExists)
	}
	return nil
}

// Remove unsubscribes from a repository.
func (s *subscriptionStore) Remove(ctx context.Context, repo domain.RepoID) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE repo = ?", repo.String())
	if err != nil {
		return fmt.Errorf("removing subscription: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing subscription: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", repo, domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether the repository is subscribed.
func (s *subscriptionStore) Exists(ctx context.Context, repo domain.RepoID) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE repo = ?", repo.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking subscription: %w", err)
	}
	return count > 0, nil
}
