package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// Ensure SubscriptionStore implements the interface.
var _ driven.SubscriptionStore = (*SubscriptionStore)(nil)

// SubscriptionStore is an in-memory implementation of driven.SubscriptionStore.
type SubscriptionStore struct {
	mu    sync.RWMutex
	repos []domain.RepoID
}

// NewSubscriptionStore creates a store seeded with repos, in order.
// Duplicates are dropped.
func NewSubscriptionStore(repos ...domain.RepoID) *SubscriptionStore {
	s := &SubscriptionStore{}
	for _, r := range repos {
		if !slices.Contains(s.repos, r) {
			s.repos = append(s.repos, r)
		}
	}
	return s
}

// List returns subscriptions in insertion order.
func (s *SubscriptionStore) List(_ context.Context) ([]domain.RepoID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.repos), nil
}

// Add appends repo. Returns domain.ErrAlreadyExists if present.
func (s *SubscriptionStore) Add(_ context.Context, repo domain.RepoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.repos, repo) {
		return domain.ErrAlreadyExists
	}
	s.repos = append(s.repos, repo)
	return nil
}

// Remove deletes repo. Returns domain.ErrNotFound if absent.
func (s *SubscriptionStore) Remove(_ context.Context, repo domain.RepoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.repos, repo)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.repos = slices.Delete(s.repos, i, i+1)
	return nil
}

// Exists reports whether repo is subscribed.
func (s *SubscriptionStore) Exists(_ context.Context, repo domain.RepoID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.repos, repo), nil
}
