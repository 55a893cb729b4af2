package web

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

type mockSubscriptions struct {
	mu    sync.Mutex
	repos []domain.RepoID
	err   error
}

func (m *mockSubscriptions) Subscribe(_ context.Context, raw string) (domain.RepoID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	repo, err := domain.ParseRepoID(raw)
	if err != nil {
		return "", err
	}
	for _, r := range m.repos {
		if r == repo {
			return "", domain.ErrAlreadyExists
		}
	}
	m.repos = append(m.repos, repo)
	return repo, nil
}

func (m *mockSubscriptions) Unsubscribe(_ context.Context, raw string) (domain.RepoID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	repo, err := domain.ParseRepoID(raw)
	if err != nil {
		return "", err
	}
	for i, r := range m.repos {
		if r == repo {
			m.repos = append(m.repos[:i], m.repos[i+1:]...)
			return repo, nil
		}
	}
	return "", domain.ErrNotFound
}

func (m *mockSubscriptions) List(_ context.Context) ([]domain.RepoID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RepoID(nil), m.repos...), m.err
}

type mockReports struct {
	reports []*domain.Report
	saved   []domain.SavedReport
	files   []domain.ReportFile
	content map[string]string
	err     error

	lastReq driving.ReportRequest
}

func (m *mockReports) Generate(_ context.Context, req driving.ReportRequest) ([]*domain.Report, error) {
	m.lastReq = req
	return m.reports, m.err
}

func (m *mockReports) Export(_ context.Context, req driving.ReportRequest) ([]domain.SavedReport, error) {
	m.lastReq = req
	return m.saved, m.err
}

func (m *mockReports) Daily(_ context.Context, _ time.Time) ([]domain.SavedReport, error) {
	return m.saved, m.err
}

func (m *mockReports) RunCycle(_ context.Context) (*domain.CycleResult, error) {
	return &domain.CycleResult{}, m.err
}

func (m *mockReports) ListReports() ([]domain.ReportFile, error) {
	return m.files, nil
}

func (m *mockReports) ReadReport(name string) (string, error) {
	if name == "../secret" {
		return "", domain.ErrInvalidInput
	}
	content, ok := m.content[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

type mockScheduler struct {
	state   domain.SchedulerState
	history []domain.CycleResult
	limit   int
}

func (m *mockScheduler) Start(_ context.Context) error { return nil }
func (m *mockScheduler) Stop() error                   { return nil }

func (m *mockScheduler) State() domain.SchedulerState { return m.state }

func (m *mockScheduler) History(_ context.Context, limit int) ([]domain.CycleResult, error) {
	m.limit = limit
	return m.history, nil
}
