package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitRecord_ShortSHA(t *testing.T) {
	assert.Equal(t, "abc1234", CommitRecord{SHA: "abc1234def5678"}.ShortSHA())
	assert.Equal(t, "abc", CommitRecord{SHA: "abc"}.ShortSHA())
	assert.Equal(t, "", CommitRecord{}.ShortSHA())
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Fix bug", FirstLine("Fix bug\n\nLong description"))
	assert.Equal(t, "Fix bug", FirstLine("Fix bug\r\nbody"))
	assert.Equal(t, "single", FirstLine("single"))
	assert.Equal(t, "", FirstLine(""))
}

func TestRepoUpdateBundle_IsEmpty(t *testing.T) {
	assert.True(t, RepoUpdateBundle{}.IsEmpty())
	assert.False(t, RepoUpdateBundle{LatestRelease: &ReleaseRecord{TagName: "v1"}}.IsEmpty())
	assert.False(t, RepoUpdateBundle{Commits: []CommitRecord{{SHA: "a"}}}.IsEmpty())
	assert.False(t, RepoUpdateBundle{Issues: []IssueRecord{{Number: 1}}}.IsEmpty())
	assert.False(t, RepoUpdateBundle{PullRequests: []PullRequestRecord{{Number: 1}}}.IsEmpty())
}

func TestRepoUpdateBundle_Counts(t *testing.T) {
	b := RepoUpdateBundle{
		LatestRelease: &ReleaseRecord{TagName: "v1"},
		Commits:       []CommitRecord{{SHA: "a"}, {SHA: "b"}},
		PullRequests:  []PullRequestRecord{{Number: 3}},
	}

	assert.Equal(t, BundleCounts{Releases: 1, Commits: 2, PullRequests: 1}, b.Counts())
}

func TestUpdates(t *testing.T) {
	updates := Updates{
		{Repo: "a/one"},
		{Repo: "b/two", Bundle: RepoUpdateBundle{Commits: []CommitRecord{{SHA: "x"}}}},
	}

	t.Run("Get finds bundle", func(t *testing.T) {
		b, ok := updates.Get("b/two")
		assert.True(t, ok)
		assert.Len(t, b.Commits, 1)
	})

	t.Run("Get misses unknown repo", func(t *testing.T) {
		_, ok := updates.Get("c/three")
		assert.False(t, ok)
	})

	t.Run("Repos preserves order", func(t *testing.T) {
		assert.Equal(t, []RepoID{"a/one", "b/two"}, updates.Repos())
	})

	t.Run("IsEmpty", func(t *testing.T) {
		assert.False(t, updates.IsEmpty())
		assert.True(t, Updates{{Repo: "a/one"}}.IsEmpty())
	})
}

func TestReport_Content(t *testing.T) {
	r := &Report{Markdown: "plain"}
	assert.False(t, r.HasSummary())
	assert.Equal(t, "plain", r.Content())

	r.Summarized = "summary + plain"
	assert.True(t, r.HasSummary())
	assert.Equal(t, "summary + plain", r.Content())
}

func TestSavedReport_FinalPath(t *testing.T) {
	assert.Equal(t, "a.md", SavedReport{Path: "a.md"}.FinalPath())
	assert.Equal(t, "a-with-summary.md", SavedReport{Path: "a.md", SummaryPath: "a-with-summary.md"}.FinalPath())
}
