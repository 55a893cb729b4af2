package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockFetcher implements driven.UpdateFetcher with canned data per repo.
type mockFetcher struct {
	mu sync.Mutex

	releases map[domain.RepoID][]domain.ReleaseRecord
	commits  map[domain.RepoID][]domain.CommitRecord
	issues   map[domain.RepoID][]domain.IssueRecord
	prs      map[domain.RepoID][]domain.PullRequestRecord

	releasesErr error
	commitsErr  error
	issuesErr   error
	prsErr      error

	calls       int
	commitSince time.Time
	commitUntil time.Time
	issueSince  time.Time
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		releases: make(map[domain.RepoID][]domain.ReleaseRecord),
		commits:  make(map[domain.RepoID][]domain.CommitRecord),
		issues:   make(map[domain.RepoID][]domain.IssueRecord),
		prs:      make(map[domain.RepoID][]domain.PullRequestRecord),
	}
}

func (m *mockFetcher) ListReleases(_ context.Context, repo domain.RepoID) ([]domain.ReleaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.releases[repo], m.releasesErr
}

func (m *mockFetcher) ListCommits(_ context.Context, repo domain.RepoID, since, until time.Time) ([]domain.CommitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.commitSince, m.commitUntil = since, until
	return m.commits[repo], m.commitsErr
}

func (m *mockFetcher) ListIssues(_ context.Context, repo domain.RepoID, since time.Time) ([]domain.IssueRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.issueSince = since
	return m.issues[repo], m.issuesErr
}

func (m *mockFetcher) ListPullRequests(_ context.Context, repo domain.RepoID) ([]domain.PullRequestRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.prs[repo], m.prsErr
}

// mockLLM implements driven.LLMService.
type mockLLM struct {
	response   string
	err        error
	panicWith  any
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	m.lastPrompt = prompt
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
}

func (m *mockPromptStore) Reload() {}

// mockReportStore implements driven.ReportStore in memory.
type mockReportStore struct {
	mu      sync.Mutex
	saved   []*domain.Report
	saveErr error
}

func (m *mockReportStore) Save(report *domain.Report) (domain.SavedReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return domain.SavedReport{}, m.saveErr
	}
	m.saved = append(m.saved, report)
	out := domain.SavedReport{Path: "/reports/" + report.Repo.Slug() + ".md"}
	if report.HasSummary() {
		out.SummaryPath = "/reports/" + report.Repo.Slug() + "-with-summary.md"
	}
	return out, nil
}

func (m *mockReportStore) List() ([]domain.ReportFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := make([]domain.ReportFile, 0, len(m.saved))
	for _, r := range m.saved {
		files = append(files, domain.ReportFile{Name: r.Repo.Slug() + ".md"})
	}
	return files, nil
}

func (m *mockReportStore) Read(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.saved {
		if r.Repo.Slug()+".md" == name {
			return r.Markdown, nil
		}
	}
	return "", domain.ErrNotFound
}

func (m *mockReportStore) Dir() string { return "/reports" }

// mockNotifier implements driven.Notifier.
type mockNotifier struct {
	mu   sync.Mutex
	sent []domain.RepoID
	fail bool
}

func (m *mockNotifier) SendReport(_ context.Context, repo domain.RepoID, _ string, _ []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, repo)
	return !m.fail
}

// mockSchedulerStore implements driven.SchedulerStore.
type mockSchedulerStore struct {
	mu        sync.Mutex
	results   []domain.CycleResult
	pruned    int
	recordErr error
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.CycleResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.results = append([]domain.CycleResult{*result}, m.results...)
	return nil
}

func (m *mockSchedulerStore) History(_ context.Context, limit int) ([]domain.CycleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.results) {
		limit = len(m.results)
	}
	return append([]domain.CycleResult(nil), m.results[:limit]...), nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = keep
	return nil
}

func (m *mockSchedulerStore) snapshot() []domain.CycleResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CycleResult(nil), m.results...)
}

var errUpstream = errors.New("upstream unavailable")
