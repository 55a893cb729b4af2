package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// Ensure SubscriptionService implements the interface.
var _ driving.SubscriptionService = (*SubscriptionService)(nil)

// SubscriptionService manages subscribed repositories.
type SubscriptionService struct {
	store driven.SubscriptionStore
}

// NewSubscriptionService creates a subscription service.
func NewSubscriptionService(store driven.SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{store: store}
}

// Subscribe validates raw and adds it to the store.
func (s *SubscriptionService) Subscribe(ctx context.Context, raw string) (domain.RepoID, error) {
	repo, err := domain.ParseRepoID(raw)
	if err != nil {
		return "", err
	}
	if err := s.store.Add(ctx, repo); err != nil {
		return repo, fmt.Errorf("subscribe %s: %w", repo, err)
	}
	return repo, nil
}

// Unsubscribe validates raw and removes it from the store.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, raw string) (domain.RepoID, error) {
	repo, err := domain.ParseRepoID(raw)
	if err != nil {
		return "", err
	}
	if err := s.store.Remove(ctx, repo); err != nil {
		return repo, fmt.Errorf("unsubscribe %s: %w", repo, err)
	}
	return repo, nil
}

// List returns subscribed repositories in the order they were added.
func (s *SubscriptionService) List(ctx context.Context) ([]domain.RepoID, error) {
	return s.store.List(ctx)
}
