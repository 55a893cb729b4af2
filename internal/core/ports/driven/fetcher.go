package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// UpdateFetcher reads repository activity from the upstream API.
// Each method maps to one endpoint kind, and each exposes exactly the
// filtering that endpoint supports natively. Client-side window filtering
// is the caller's responsibility.
type UpdateFetcher interface {
	// ListReleases returns releases, newest first. No native time filter.
	ListReleases(ctx context.Context, repo domain.RepoID) ([]domain.ReleaseRecord, error)

	// ListCommits returns commits between since and until (zero = unbounded).
	// Both bounds are applied by the server.
	ListCommits(ctx context.Context, repo domain.RepoID, since, until time.Time) ([]domain.CommitRecord, error)

	// ListIssues returns issues in every state updated at or after since
	// (zero = unbounded). Only the lower bound is applied by the server.
	ListIssues(ctx context.Context, repo domain.RepoID, since time.Time) ([]domain.IssueRecord, error)

	// ListPullRequests returns pull requests in every state.
	// The server applies no time filtering.
	ListPullRequests(ctx context.Context, repo domain.RepoID) ([]domain.PullRequestRecord, error)
}
