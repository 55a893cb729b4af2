package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// ListIssues returns issues in every state updated at or after since.
// Only the lower bound is supported by the endpoint. Pull requests, which
// the issues endpoint also returns, are skipped.
func (c *Client) ListIssues(ctx context.Context, repo domain.RepoID, since time.Time) ([]domain.IssueRecord, error) {
	opts := &gh.IssueListByRepoOptions{
		State:     "all",
		Sort:      "updated",
		Direction: "desc",
		Since:     since,
		ListOptions: gh.ListOptions{
			PerPage: c.perPage,
		},
	}
	var records []domain.IssueRecord

	for page := 1; ; page++ {
		var issues []*gh.Issue
		var resp *gh.Response
		err := c.do(ctx, "list issues", func(ctx context.Context) (*gh.Response, error) {
			var err error
			issues, resp, err = c.gh.Issues.ListByRepo(ctx, repo.Owner(), repo.Name(), opts)
			return resp, err
		})
		if err != nil {
			return records, err
		}

		for _, issue := range issues {
			// Skip pull requests (they show up in issues endpoint too).
			if issue.IsPullRequest() {
				continue
			}
			records = append(records, domain.IssueRecord{
				Number:    issue.GetNumber(),
				Title:     issue.GetTitle(),
				State:     issue.GetState(),
				URL:       issue.GetHTMLURL(),
				UpdatedAt: issue.GetUpdatedAt().Time.UTC(),
			})
		}

		if !c.nextPage(resp, page) {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return records, nil
}
