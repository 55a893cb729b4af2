package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// Fixed sentences rendered in place of an empty section.
const (
	noReleases     = "No releases found."
	noCommits      = "No commits found."
	noIssues       = "No issues found."
	noPullRequests = "No pull requests found."
)

// Assembler renders bundles as Markdown.
//
// Every section is always rendered; an empty section holds a fixed
// "No ... found." sentence. Output depends only on the input, never on the
// clock, so identical bundles render byte-identical Markdown.
type Assembler struct{}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// AssembleRepo renders a single-repository report.
func (a *Assembler) AssembleRepo(repo domain.RepoID, bundle domain.RepoUpdateBundle, window domain.TimeWindow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Repository Report: %s\n\n", repo)
	fmt.Fprintf(&b, "Window: %s\n\n", window)
	writeBundle(&b, bundle, "##")
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// AssembleAll renders one report covering several repositories, in order.
func (a *Assembler) AssembleAll(updates domain.Updates, window domain.TimeWindow) string {
	var b strings.Builder
	b.WriteString("# GitHub Updates\n\n")
	fmt.Fprintf(&b, "Window: %s\n\n", window)
	if len(updates) == 0 {
		b.WriteString("No subscribed repositories.\n")
		return b.String()
	}
	for _, u := range updates {
		fmt.Fprintf(&b, "## %s\n\n", u.Repo)
		writeBundle(&b, u.Bundle, "###")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeBundle(b *strings.Builder, bundle domain.RepoUpdateBundle, heading string) {
	fmt.Fprintf(b, "%s Latest Release\n\n", heading)
	if r := bundle.LatestRelease; r != nil {
		title := r.Name
		if title == "" {
			title = r.TagName
		}
		fmt.Fprintf(b, "- Version: %s\n", r.TagName)
		fmt.Fprintf(b, "- Title: %s\n", title)
		fmt.Fprintf(b, "- Published at: %s\n", formatTime(r.PublishedAt))
		fmt.Fprintf(b, "- URL: %s\n\n", r.URL)
	} else {
		b.WriteString(noReleases + "\n\n")
	}

	fmt.Fprintf(b, "%s Recent Commits\n\n", heading)
	if len(bundle.Commits) == 0 {
		b.WriteString(noCommits + "\n")
	}
	for _, c := range bundle.Commits {
		fmt.Fprintf(b, "- [`%s`] %s (by %s)\n", c.ShortSHA(), domain.FirstLine(c.Message), c.Author)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "%s Recent Issues\n\n", heading)
	if len(bundle.Issues) == 0 {
		b.WriteString(noIssues + "\n")
	}
	for _, i := range bundle.Issues {
		fmt.Fprintf(b, "- #%d [%s](%s) (%s)\n", i.Number, i.Title, i.URL, i.State)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "%s Recent Pull Requests\n\n", heading)
	if len(bundle.PullRequests) == 0 {
		b.WriteString(noPullRequests + "\n")
	}
	for _, pr := range bundle.PullRequests {
		fmt.Fprintf(b, "- #%d [%s](%s) by @%s (%s)\n", pr.Number, pr.Title, pr.URL, pr.Author, pr.State)
	}
	b.WriteString("\n")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(time.RFC3339)
}
