package services

import (
	"context"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/logger"
)

// Collector gathers one repository's activity inside a time window.
//
// GitHub filters each endpoint differently, so each field has its own
// policy:
//
//   - releases: no native filter; both bounds applied here on PublishedAt
//   - commits: since and until sent upstream; no re-filtering
//   - issues: since sent upstream; until applied here on UpdatedAt
//   - pull requests: no native filter; both bounds applied here on UpdatedAt
//
// Collector is the boundary where fetch errors become "no data": a failed
// endpoint is logged and leaves only its own field empty.
type Collector struct {
	fetcher driven.UpdateFetcher
}

// NewCollector creates a collector over the given fetcher.
func NewCollector(fetcher driven.UpdateFetcher) *Collector {
	return &Collector{fetcher: fetcher}
}

// Collect fetches repo's releases, commits, issues and pull requests.
// An inverted window returns an empty bundle without calling upstream.
func (c *Collector) Collect(ctx context.Context, repo domain.RepoID, window domain.TimeWindow) domain.RepoUpdateBundle {
	var bundle domain.RepoUpdateBundle
	if window.Inverted() {
		logger.Debug("collect %s: inverted window %s, skipping", repo, window)
		return bundle
	}

	logger.Section("Collect " + repo.String())
	defer logger.Elapsed("collect " + repo.String())()

	bundle.LatestRelease = c.latestRelease(ctx, repo, window)
	bundle.Commits = c.commits(ctx, repo, window)
	bundle.Issues = c.issues(ctx, repo, window)
	bundle.PullRequests = c.pullRequests(ctx, repo, window)

	counts := bundle.Counts()
	logger.Info("collect %s: release=%v commits=%d issues=%d prs=%d",
		repo, bundle.LatestRelease != nil, counts.Commits, counts.Issues, counts.PullRequests)

	return bundle
}

func (c *Collector) latestRelease(ctx context.Context, repo domain.RepoID, window domain.TimeWindow) *domain.ReleaseRecord {
	releases, err := c.fetcher.ListReleases(ctx, repo)
	if err != nil {
		logger.Error("fetch releases for %s: %v", repo, err)
		return nil
	}
	for i := range releases {
		if window.Contains(releases[i].PublishedAt) {
			release := releases[i]
			return &release
		}
	}
	return nil
}

func (c *Collector) commits(ctx context.Context, repo domain.RepoID, window domain.TimeWindow) []domain.CommitRecord {
	commits, err := c.fetcher.ListCommits(ctx, repo, window.Since, window.Until)
	if err != nil {
		logger.Error("fetch commits for %s: %v", repo, err)
		return nil
	}
	return commits
}

func (c *Collector) issues(ctx context.Context, repo domain.RepoID, window domain.TimeWindow) []domain.IssueRecord {
	issues, err := c.fetcher.ListIssues(ctx, repo, window.Since)
	if err != nil {
		logger.Error("fetch issues for %s: %v", repo, err)
		return nil
	}
	if !window.HasUntil() {
		return issues
	}

	kept := issues[:0:0]
	for _, issue := range issues {
		if !window.AfterUntil(issue.UpdatedAt) {
			kept = append(kept, issue)
		}
	}
	return kept
}

func (c *Collector) pullRequests(ctx context.Context, repo domain.RepoID, window domain.TimeWindow) []domain.PullRequestRecord {
	prs, err := c.fetcher.ListPullRequests(ctx, repo)
	if err != nil {
		logger.Error("fetch pull requests for %s: %v", repo, err)
		return nil
	}
	if window.IsZero() {
		return prs
	}

	kept := prs[:0:0]
	for _, pr := range prs {
		if window.Contains(pr.UpdatedAt) {
			kept = append(kept, pr)
		}
	}
	return kept
}
