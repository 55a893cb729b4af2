package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// ReportRequest describes an on-demand report.
type ReportRequest struct {
	// Repos to include. Empty means every subscription.
	Repos []domain.RepoID

	// Window bounds the activity. A zero window means all history.
	Window domain.TimeWindow

	// Summarize asks the LLM for a summary when one is configured.
	Summarize bool

	// Combined renders all repositories in one report instead of one per repo.
	Combined bool

	// SkipEmpty drops repositories with no activity in the window.
	SkipEmpty bool

	// Notify sends each exported report through the notifier, if configured.
	Notify bool
}

// ReportService drives the fetch, render, summarise and deliver pipeline.
type ReportService interface {
	// Generate fetches and renders reports without writing them anywhere.
	Generate(ctx context.Context, req ReportRequest) ([]*domain.Report, error)

	// Export generates reports and writes them to the report store.
	Export(ctx context.Context, req ReportRequest) ([]domain.SavedReport, error)

	// Daily exports a summarised report for each subscription covering the
	// calendar day containing day.
	Daily(ctx context.Context, day time.Time) ([]domain.SavedReport, error)

	// RunCycle is one scheduler iteration: every subscription, no window,
	// one report per repository with activity, saved and notified.
	RunCycle(ctx context.Context) (*domain.CycleResult, error)

	// ListReports returns exported report files.
	ListReports() ([]domain.ReportFile, error)

	// ReadReport returns an exported report by file name.
	ReadReport(name string) (string, error)
}
