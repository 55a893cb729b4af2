package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
	"github.com/custodia-labs/sentinel/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportOptions tunes a ReportService.
type ReportOptions struct {
	// SummarizeCycles asks for LLM summaries in scheduled cycles.
	SummarizeCycles bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ReportService drives fetch, render, summarise and delivery.
type ReportService struct {
	subs       driven.SubscriptionStore
	aggregator *Aggregator
	assembler  *Assembler
	summary    *SummaryAppender
	store      driven.ReportStore
	notifier   driven.Notifier
	opts       ReportOptions
}

// NewReportService creates a report service.
// summary and notifier may be nil. A nil fetcher means no GitHub token is
// configured: every operation that fetches returns domain.ErrTokenMissing.
func NewReportService(
	subs driven.SubscriptionStore,
	fetcher driven.UpdateFetcher,
	summary *SummaryAppender,
	store driven.ReportStore,
	notifier driven.Notifier,
	opts ReportOptions,
) *ReportService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	var aggregator *Aggregator
	if fetcher != nil {
		aggregator = NewAggregator(NewCollector(fetcher))
	}
	return &ReportService{
		subs:       subs,
		aggregator: aggregator,
		assembler:  NewAssembler(),
		summary:    summary,
		store:      store,
		notifier:   notifier,
		opts:       opts,
	}
}

// Generate fetches and renders reports without writing them.
func (s *ReportService) Generate(ctx context.Context, req driving.ReportRequest) ([]*domain.Report, error) {
	if s.aggregator == nil {
		return nil, domain.ErrTokenMissing
	}
	repos, err := s.resolveRepos(ctx, req.Repos)
	if err != nil {
		return nil, err
	}

	updates := s.aggregator.Aggregate(ctx, repos, req.Window)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.SkipEmpty {
		updates = nonEmpty(updates)
	}

	generatedAt := s.opts.Now().UTC()

	if req.Combined {
		if req.SkipEmpty && len(updates) == 0 {
			return nil, nil
		}
		report := &domain.Report{
			Window:      req.Window,
			Markdown:    s.assembler.AssembleAll(updates, req.Window),
			GeneratedAt: generatedAt,
		}
		s.summarise(ctx, report, req.Summarize)
		return []*domain.Report{report}, nil
	}

	reports := make([]*domain.Report, 0, len(updates))
	for _, u := range updates {
		report := &domain.Report{
			Repo:        u.Repo,
			Window:      req.Window,
			Markdown:    s.assembler.AssembleRepo(u.Repo, u.Bundle, req.Window),
			GeneratedAt: generatedAt,
		}
		s.summarise(ctx, report, req.Summarize)
		reports = append(reports, report)
	}
	return reports, nil
}

// Export generates reports and writes each to the report store. A failed
// write is returned after the remaining reports have been attempted.
func (s *ReportService) Export(ctx context.Context, req driving.ReportRequest) ([]domain.SavedReport, error) {
	reports, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	saved := make([]domain.SavedReport, 0, len(reports))
	var errs []error
	for _, report := range reports {
		out, err := s.store.Save(report)
		if err != nil {
			errs = append(errs, fmt.Errorf("save report for %s: %w", subject(report.Repo), err))
			continue
		}
		logger.Info("saved %s", out.FinalPath())
		saved = append(saved, out)

		if req.Notify {
			s.notify(ctx, report)
		}
	}
	return saved, errors.Join(errs...)
}

// Daily exports a summarised report per subscription for the calendar day
// (UTC) containing day.
func (s *ReportService) Daily(ctx context.Context, day time.Time) ([]domain.SavedReport, error) {
	return s.Export(ctx, driving.ReportRequest{
		Window:    domain.DayWindow(day),
		Summarize: true,
	})
}

// RunCycle is one scheduler iteration: every subscription with no window,
// one saved and notified report per repository with activity.
func (s *ReportService) RunCycle(ctx context.Context) (*domain.CycleResult, error) {
	if s.aggregator == nil {
		return nil, domain.ErrTokenMissing
	}
	repos, err := s.subs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	result := &domain.CycleResult{ReposChecked: len(repos)}
	if len(repos) == 0 {
		logger.Info("cycle: no subscriptions")
		return result, nil
	}

	saved, err := s.Export(ctx, driving.ReportRequest{
		Repos:     repos,
		Summarize: s.opts.SummarizeCycles,
		SkipEmpty: true,
		Notify:    true,
	})
	result.ReportsDelivered = len(saved)
	return result, err
}

// ListReports returns exported report files.
func (s *ReportService) ListReports() ([]domain.ReportFile, error) {
	return s.store.List()
}

// ReadReport returns an exported report by file name.
func (s *ReportService) ReadReport(name string) (string, error) {
	return s.store.Read(name)
}

func (s *ReportService) resolveRepos(ctx context.Context, repos []domain.RepoID) ([]domain.RepoID, error) {
	if len(repos) > 0 {
		return repos, nil
	}
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: no repositories subscribed", domain.ErrInvalidInput)
	}
	return subs, nil
}

func (s *ReportService) summarise(ctx context.Context, report *domain.Report, want bool) {
	if !want || !s.summary.Enabled() {
		return
	}
	summarized, ok := s.summary.AppendSummary(ctx, report.Markdown, report.Repo, report.Window)
	if ok {
		report.Summarized = summarized
	}
}

func (s *ReportService) notify(ctx context.Context, report *domain.Report) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.SendReport(ctx, report.Repo, report.Content(), nil) {
		logger.Error("notify %s: delivery failed", subject(report.Repo))
	}
}

func nonEmpty(updates domain.Updates) domain.Updates {
	kept := make(domain.Updates, 0, len(updates))
	for _, u := range updates {
		if !u.Bundle.IsEmpty() {
			kept = append(kept, u)
		}
	}
	return kept
}
