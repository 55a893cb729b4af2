package domain

import (
	"strings"
	"time"
)

// shortSHALength is the number of characters shown for a commit SHA.
const shortSHALength = 7

// ReleaseRecord is a published release of a repository.
type ReleaseRecord struct {
	TagName     string
	Name        string
	PublishedAt time.Time
	URL         string
}

// CommitRecord is a single commit as shown in reports.
type CommitRecord struct {
	// SHA is the full commit hash.
	SHA string

	// Message is the first line of the commit message only.
	Message string

	// Author is the commit author's display name.
	Author string

	// Date is the author date.
	Date time.Time
}

// ShortSHA returns the abbreviated 7 character SHA.
func (c CommitRecord) ShortSHA() string {
	if len(c.SHA) <= shortSHALength {
		return c.SHA
	}
	return c.SHA[:shortSHALength]
}

// FirstLine returns the first line of a (possibly multi-line) message.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}

// IssueRecord is an issue as shown in reports.
type IssueRecord struct {
	Number    int
	Title     string
	State     string
	URL       string
	UpdatedAt time.Time
}

// PullRequestRecord is a pull request as shown in reports.
type PullRequestRecord struct {
	Number    int
	Title     string
	State     string
	URL       string
	Author    string
	UpdatedAt time.Time
}

// RepoUpdateBundle is everything fetched for one repository in one cycle.
// It is created fresh per fetch and never merged with an earlier bundle.
type RepoUpdateBundle struct {
	// LatestRelease is the most recent release inside the window, or nil.
	LatestRelease *ReleaseRecord

	// Commits are kept in API order (newest first).
	Commits []CommitRecord

	// Issues are kept in API order.
	Issues []IssueRecord

	// PullRequests are kept in API order.
	PullRequests []PullRequestRecord
}

// IsEmpty reports whether the bundle holds no items at all.
func (b RepoUpdateBundle) IsEmpty() bool {
	return b.LatestRelease == nil &&
		len(b.Commits) == 0 &&
		len(b.Issues) == 0 &&
		len(b.PullRequests) == 0
}

// BundleCounts summarises a bundle's size.
type BundleCounts struct {
	Releases     int `json:"releases"`
	Commits      int `json:"commits"`
	Issues       int `json:"issues"`
	PullRequests int `json:"pull_requests"`
}

// Counts returns the number of items per field.
func (b RepoUpdateBundle) Counts() BundleCounts {
	c := BundleCounts{
		Commits:      len(b.Commits),
		Issues:       len(b.Issues),
		PullRequests: len(b.PullRequests),
	}
	if b.LatestRelease != nil {
		c.Releases = 1
	}
	return c
}

// RepoUpdate pairs a repository with its bundle.
type RepoUpdate struct {
	Repo   RepoID
	Bundle RepoUpdateBundle
}

// Updates is an ordered repo -> bundle mapping. Order follows the
// repository order given by the caller.
type Updates []RepoUpdate

// Get returns the bundle for repo.
func (u Updates) Get(repo RepoID) (RepoUpdateBundle, bool) {
	for i := range u {
		if u[i].Repo == repo {
			return u[i].Bundle, true
		}
	}
	return RepoUpdateBundle{}, false
}

// Repos returns the repositories in order.
func (u Updates) Repos() []RepoID {
	repos := make([]RepoID, len(u))
	for i := range u {
		repos[i] = u[i].Repo
	}
	return repos
}

// IsEmpty reports whether every bundle is empty.
func (u Updates) IsEmpty() bool {
	for i := range u {
		if !u[i].Bundle.IsEmpty() {
			return false
		}
	}
	return true
}
