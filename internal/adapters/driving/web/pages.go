package web

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// dashboardHistory is the number of cycles shown on the dashboard.
const dashboardHistory = 10

type dashboardData struct {
	Subscriptions []domain.RepoID
	Reports       []domain.ReportFile
	State         domain.SchedulerState
	History       []domain.CycleResult
	Error         string
}

type reportData struct {
	Name    string
	Content string
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{State: domain.SchedulerStopped}

	var errs []error
	subs, err := s.ports.Subscriptions.List(r.Context())
	if err != nil {
		errs = append(errs, err)
	}
	data.Subscriptions = subs

	reports, err := s.ports.Reports.ListReports()
	if err != nil {
		errs = append(errs, err)
	}
	data.Reports = reports

	if s.ports.Scheduler != nil {
		data.State = s.ports.Scheduler.State()
		history, err := s.ports.Scheduler.History(r.Context(), dashboardHistory)
		if err != nil {
			errs = append(errs, err)
		}
		data.History = history
	}

	if err := errors.Join(errs...); err != nil {
		data.Error = err.Error()
	}
	s.render(w, http.StatusOK, "dashboard", data)
}

func (s *Server) reportPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, err := s.ports.Reports.ReadReport(name)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.render(w, http.StatusOK, "report", reportData{Name: name, Content: content})
}

// render executes into a buffer so a template error never leaves a
// half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("web: render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
