package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// ListCommits returns commits on the default branch. Both bounds are sent
// to the server as since/until; a zero bound is omitted.
func (c *Client) ListCommits(
	ctx context.Context, repo domain.RepoID, since, until time.Time,
) ([]domain.CommitRecord, error) {
	opts := &gh.CommitsListOptions{
		Since:       since,
		Until:       until,
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}
	var records []domain.CommitRecord

	for page := 1; ; page++ {
		var commits []*gh.RepositoryCommit
		var resp *gh.Response
		err := c.do(ctx, "list commits", func(ctx context.Context) (*gh.Response, error) {
			var err error
			commits, resp, err = c.gh.Repositories.ListCommits(ctx, repo.Owner(), repo.Name(), opts)
			return resp, err
		})
		if err != nil {
			return records, err
		}

		for _, commit := range commits {
			records = append(records, toCommitRecord(commit))
		}

		if !c.nextPage(resp, page) {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}

func toCommitRecord(commit *gh.RepositoryCommit) domain.CommitRecord {
	author := commit.GetCommit().GetAuthor().GetName()
	if author == "" {
		author = commit.GetAuthor().GetLogin()
	}
	return domain.CommitRecord{
		SHA:     commit.GetSHA(),
		Message: domain.FirstLine(commit.GetCommit().GetMessage()),
		Author:  author,
		Date:    commit.GetCommit().GetAuthor().GetDate().Time.UTC(),
	}
}
