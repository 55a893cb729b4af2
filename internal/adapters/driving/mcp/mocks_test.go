package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// mockSubscriptionService is a mock implementation of driving.SubscriptionService.
type mockSubscriptionService struct {
	repos []domain.RepoID
	err   error
}

func (m *mockSubscriptionService) Subscribe(_ context.Context, raw string) (domain.RepoID, error) {
	if m.err != nil {
		return "", m.err
	}
	return domain.ParseRepoID(raw)
}

func (m *mockSubscriptionService) Unsubscribe(_ context.Context, raw string) (domain.RepoID, error) {
	if m.err != nil {
		return "", m.err
	}
	return domain.ParseRepoID(raw)
}

func (m *mockSubscriptionService) List(_ context.Context) ([]domain.RepoID, error) {
	return m.repos, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	reports []*domain.Report
	files   []domain.ReportFile
	content map[string]string
	err     error

	lastReq driving.ReportRequest
}

func (m *mockReportService) Generate(_ context.Context, req driving.ReportRequest) ([]*domain.Report, error) {
	m.lastReq = req
	return m.reports, m.err
}

func (m *mockReportService) Export(_ context.Context, req driving.ReportRequest) ([]domain.SavedReport, error) {
	m.lastReq = req
	return nil, m.err
}

func (m *mockReportService) Daily(_ context.Context, _ time.Time) ([]domain.SavedReport, error) {
	return nil, m.err
}

func (m *mockReportService) RunCycle(_ context.Context) (*domain.CycleResult, error) {
	return &domain.CycleResult{}, m.err
}

func (m *mockReportService) ListReports() ([]domain.ReportFile, error) {
	return m.files, m.err
}

func (m *mockReportService) ReadReport(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	content, ok := m.content[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

func newTestPorts() *Ports {
	return &Ports{
		Subscriptions: &mockSubscriptionService{},
		Reports:       &mockReportService{content: map[string]string{}},
	}
}
