package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// ListPullRequests returns pull requests in every state, most recently
// updated first. The endpoint has no time filter.
func (c *Client) ListPullRequests(ctx context.Context, repo domain.RepoID) ([]domain.PullRequestRecord, error) {
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}
	var records []domain.PullRequestRecord

	for page := 1; ; page++ {
		var prs []*gh.PullRequest
		var resp *gh.Response
		err := c.do(ctx, "list pull requests", func(ctx context.Context) (*gh.Response, error) {
			var err error
			prs, resp, err = c.gh.PullRequests.List(ctx, repo.Owner(), repo.Name(), opts)
			return resp, err
		})
		if err != nil {
			return records, err
		}

		for _, pr := range prs {
			records = append(records, domain.PullRequestRecord{
				Number:    pr.GetNumber(),
				Title:     pr.GetTitle(),
				State:     pr.GetState(),
				URL:       pr.GetHTMLURL(),
				Author:    pr.GetUser().GetLogin(),
				UpdatedAt: pr.GetUpdatedAt().Time.UTC(),
			})
		}

		if !c.nextPage(resp, page) {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}
