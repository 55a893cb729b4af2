package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// ListReleases returns releases newest first. The endpoint has no time
// filter; callers filter on PublishedAt.
func (c *Client) ListReleases(ctx context.Context, repo domain.RepoID) ([]domain.ReleaseRecord, error) {
	opts := &gh.ListOptions{PerPage: c.perPage}
	var records []domain.ReleaseRecord

	for page := 1; ; page++ {
		var releases []*gh.RepositoryRelease
		var resp *gh.Response
		err := c.do(ctx, "list releases", func(ctx context.Context) (*gh.Response, error) {
			var err error
			releases, resp, err = c.gh.Repositories.ListReleases(ctx, repo.Owner(), repo.Name(), opts)
			return resp, err
		})
		if err != nil {
			return records, err
		}

		for _, r := range releases {
			records = append(records, toReleaseRecord(r))
		}

		if !c.nextPage(resp, page) {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}

func toReleaseRecord(r *gh.RepositoryRelease) domain.ReleaseRecord {
	return domain.ReleaseRecord{
		TagName:     r.GetTagName(),
		Name:        r.GetName(),
		PublishedAt: r.GetPublishedAt().Time.UTC(),
		URL:         r.GetHTMLURL(),
	}
}
