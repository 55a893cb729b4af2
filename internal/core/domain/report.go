package domain

import "time"

// Report is an assembled Markdown report.
// When summarisation succeeded, Summarized holds the summary block followed
// by the full original content; otherwise it is empty.
type Report struct {
	// Repo is the repository the report covers. Empty for multi-repository reports.
	Repo RepoID

	// Window is the time range the report covers.
	Window TimeWindow

	// Markdown is the plain report.
	Markdown string

	// Summarized is the summary-plus-original variant, if any.
	Summarized string

	// GeneratedAt is when the report was assembled. Used for file naming only.
	GeneratedAt time.Time
}

// HasSummary reports whether a summarised variant exists.
func (r *Report) HasSummary() bool {
	return r.Summarized != ""
}

// Content returns the richest available variant.
func (r *Report) Content() string {
	if r.HasSummary() {
		return r.Summarized
	}
	return r.Markdown
}

// SavedReport records where a report was written.
type SavedReport struct {
	// Path is the plain report file.
	Path string

	// SummaryPath is the sibling summary file. Empty when no summary exists.
	SummaryPath string
}

// FinalPath returns the summary file if present, otherwise the plain file.
func (s SavedReport) FinalPath() string {
	if s.SummaryPath != "" {
		return s.SummaryPath
	}
	return s.Path
}

// ReportFile describes an exported report on disk.
type ReportFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	ModTime   time.Time `json:"mod_time"`
	Size      int64     `json:"size"`
	IsSummary bool      `json:"is_summary"`
}
