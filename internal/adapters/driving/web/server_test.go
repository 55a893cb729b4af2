package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newTestServer(t *testing.T) (*Server, *mockSubscriptions, *mockReports, *mockScheduler) {
	t.Helper()
	subs := &mockSubscriptions{repos: []domain.RepoID{"golang/go"}}
	reports := &mockReports{content: map[string]string{}}
	sched := &mockScheduler{state: domain.SchedulerRunning}

	srv, err := NewServer(Ports{Subscriptions: subs, Reports: reports, Scheduler: sched})
	require.NoError(t, err)
	return srv, subs, reports, sched
}

func do(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestNewServer_RequiresServices(t *testing.T) {
	_, err := NewServer(Ports{})
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestSubscriptionsAPI(t *testing.T) {
	srv, subs, _, _ := newTestServer(t)

	rec, env := do(t, srv, http.MethodGet, "/api/subscriptions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.JSONEq(t, `["golang/go"]`, string(env.Data))

	rec, env = do(t, srv, http.MethodPost, "/api/subscriptions", `{"repo":"octo/hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `"octo/hello"`, string(env.Data))
	assert.Len(t, subs.repos, 2)

	rec, env = do(t, srv, http.MethodDelete, "/api/subscriptions/golang/go", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"golang/go"`, string(env.Data))
	assert.Equal(t, []domain.RepoID{"octo/hello"}, subs.repos)
}

func TestSubscriptionsAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"invalid repo", http.MethodPost, "/api/subscriptions", `{"repo":"nope"}`, http.StatusBadRequest},
		{"duplicate", http.MethodPost, "/api/subscriptions", `{"repo":"golang/go"}`, http.StatusConflict},
		{"malformed body", http.MethodPost, "/api/subscriptions", `{"repo":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/subscriptions", `{"name":"a/b"}`, http.StatusBadRequest},
		{"missing", http.MethodDelete, "/api/subscriptions/a/b", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _, _ := newTestServer(t)
			rec, env := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestGenerateReports(t *testing.T) {
	srv, _, reports, _ := newTestServer(t)
	reports.reports = []*domain.Report{{
		Repo:     "golang/go",
		Markdown: "# Repository Report: golang/go\n",
	}}

	rec, env := do(t, srv, http.MethodPost, "/api/reports",
		`{"repos":["golang/go"],"since":"2024-01-01","until":"2024-01-02","summarize":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []reportResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "golang/go", out[0].Repo)
	assert.Contains(t, out[0].Markdown, "Repository Report")

	req := reports.lastReq
	assert.Equal(t, []domain.RepoID{"golang/go"}, req.Repos)
	assert.True(t, req.Summarize)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), req.Window.Since)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), req.Window.Until)
}

func TestGenerateReports_Export(t *testing.T) {
	srv, _, reports, _ := newTestServer(t)
	reports.saved = []domain.SavedReport{{Path: "/tmp/a.md", SummaryPath: "/tmp/a-with-summary.md"}}

	rec, env := do(t, srv, http.MethodPost, "/api/reports", `{"export":true,"notify":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"path":"/tmp/a.md","summary_path":"/tmp/a-with-summary.md"}]`, string(env.Data))
	assert.True(t, reports.lastReq.Notify)
}

func TestGenerateReports_Errors(t *testing.T) {
	t.Run("inverted window", func(t *testing.T) {
		srv, _, _, _ := newTestServer(t)
		rec, _ := do(t, srv, http.MethodPost, "/api/reports", `{"since":"2024-02-01","until":"2024-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad repo", func(t *testing.T) {
		srv, _, _, _ := newTestServer(t)
		rec, _ := do(t, srv, http.MethodPost, "/api/reports", `{"repos":["bad"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		srv, _, reports, _ := newTestServer(t)
		reports.err = domain.ErrTokenMissing
		rec, _ := do(t, srv, http.MethodPost, "/api/reports", `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("internal", func(t *testing.T) {
		srv, _, reports, _ := newTestServer(t)
		reports.err = errors.New("boom")
		rec, env := do(t, srv, http.MethodPost, "/api/reports", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "boom", env.Error)
	})
}

func TestReportsAPI(t *testing.T) {
	srv, _, reports, _ := newTestServer(t)
	reports.files = []domain.ReportFile{{Name: "golang_go_20240101.md", Size: 12}}
	reports.content["golang_go_20240101.md"] = "# hello"

	rec, env := do(t, srv, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "golang_go_20240101.md")

	rec, _ = do(t, srv, http.MethodGet, "/api/reports/golang_go_20240101.md", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# hello", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")

	rec, _ = do(t, srv, http.MethodGet, "/api/reports/missing.md", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsAPI_EmptyListIsArray(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	_, env := do(t, srv, http.MethodGet, "/api/reports", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSchedulerAPI(t *testing.T) {
	srv, _, _, sched := newTestServer(t)
	sched.history = []domain.CycleResult{{ID: "c1", ReposChecked: 2, Success: true}}

	rec, env := do(t, srv, http.MethodGet, "/api/scheduler?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, sched.limit)

	var out struct {
		State   string          `json:"state"`
		History []cycleResponse `json:"history"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "running", out.State)
	require.Len(t, out.History, 1)
	assert.Equal(t, "c1", out.History[0].ID)

	rec, _ = do(t, srv, http.MethodGet, "/api/scheduler?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchedulerAPI_NoScheduler(t *testing.T) {
	srv, err := NewServer(Ports{Subscriptions: &mockSubscriptions{}, Reports: &mockReports{}})
	require.NoError(t, err)

	rec, env := do(t, srv, http.MethodGet, "/api/scheduler", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"state":"stopped"`)
}

func TestDashboard(t *testing.T) {
	srv, _, reports, sched := newTestServer(t)
	reports.files = []domain.ReportFile{{Name: "golang_go_20240101-with-summary.md", IsSummary: true}}
	sched.history = []domain.CycleResult{{Success: false, Error: "rate limited"}}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "golang/go")
	assert.Contains(t, body, "Scheduler: running")
	assert.Contains(t, body, "rate limited")
	assert.Contains(t, body, `href="/reports/golang_go_20240101-with-summary.md"`)
	assert.Contains(t, body, "(summary)")
}

func TestReportPage(t *testing.T) {
	srv, _, reports, _ := newTestServer(t)
	reports.content["r.md"] = "# AI Summary\n\n<script>alert(1)</script>\n\n- item"

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/r.md", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>AI Summary</h1>")
	assert.Contains(t, body, "<li>item</li>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestReportPage_Errors(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/missing.md", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
