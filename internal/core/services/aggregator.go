package services

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// Aggregator runs the collector over a set of repositories.
type Aggregator struct {
	collector *Collector
}

// NewAggregator creates an aggregator using collector.
func NewAggregator(collector *Collector) *Aggregator {
	return &Aggregator{collector: collector}
}

// Aggregate collects every repository in caller order. Each repository gets
// exactly one entry, even when all of its endpoints failed. Iteration stops
// early only when ctx is cancelled; repositories not reached are omitted.
func (a *Aggregator) Aggregate(ctx context.Context, repos []domain.RepoID, window domain.TimeWindow) domain.Updates {
	updates := make(domain.Updates, 0, len(repos))
	for _, repo := range repos {
		if ctx.Err() != nil {
			break
		}
		updates = append(updates, domain.RepoUpdate{
			Repo:   repo,
			Bundle: a.collector.Collect(ctx, repo, window),
		})
	}
	return updates
}
