package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// defaultHistoryLimit is the number of cycles returned by /api/scheduler.
const defaultHistoryLimit = 20

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type subscribeRequest struct {
	Repo string `json:"repo"`
}

type reportRequest struct {
	Repos     []string `json:"repos"`
	Since     string   `json:"since"`
	Until     string   `json:"until"`
	Summarize bool     `json:"summarize"`
	Combined  bool     `json:"combined"`
	Export    bool     `json:"export"`
	Notify    bool     `json:"notify"`
}

type reportResponse struct {
	Repo       string `json:"repo,omitempty"`
	Window     string `json:"window"`
	Markdown   string `json:"markdown"`
	Summarized string `json:"summarized,omitempty"`
}

type savedResponse struct {
	Path        string `json:"path"`
	SummaryPath string `json:"summary_path,omitempty"`
}

type cycleResponse struct {
	ID               string    `json:"id"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
	ReposChecked     int       `json:"repos_checked"`
	ReportsDelivered int       `json:"reports_delivered"`
	Success          bool      `json:"success"`
	Error            string    `json:"error,omitempty"`
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	repos, err := s.ports.Subscriptions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.String())
	}
	writeData(w, http.StatusOK, names)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	repo, err := s.ports.Subscriptions.Subscribe(r.Context(), req.Repo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, repo.String())
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")

	repo, err := s.ports.Subscriptions.Unsubscribe(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, repo.String())
}

func (s *Server) listReports(w http.ResponseWriter, _ *http.Request) {
	files, err := s.ports.Reports.ListReports()
	if err != nil {
		writeError(w, err)
		return
	}
	if files == nil {
		files = []domain.ReportFile{}
	}
	writeData(w, http.StatusOK, files)
}

func (s *Server) readReport(w http.ResponseWriter, r *http.Request) {
	content, err := s.ports.Reports.ReadReport(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(content))
}

func (s *Server) generateReports(w http.ResponseWriter, r *http.Request) {
	var body reportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	req, err := body.toRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	if body.Export {
		saved, err := s.ports.Reports.Export(r.Context(), req)
		if err != nil && len(saved) == 0 {
			writeError(w, err)
			return
		}
		out := make([]savedResponse, 0, len(saved))
		for _, sr := range saved {
			out = append(out, savedResponse{Path: sr.Path, SummaryPath: sr.SummaryPath})
		}
		writeData(w, http.StatusOK, out)
		return
	}

	reports, err := s.ports.Reports.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]reportResponse, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportResponse{
			Repo:       rep.Repo.String(),
			Window:     rep.Window.String(),
			Markdown:   rep.Markdown,
			Summarized: rep.Summarized,
		})
	}
	writeData(w, http.StatusOK, out)
}

func (b reportRequest) toRequest() (driving.ReportRequest, error) {
	repos, err := domain.ParseRepoIDs(b.Repos)
	if err != nil {
		return driving.ReportRequest{}, err
	}
	window, err := domain.ParseWindow(b.Since, b.Until)
	if err != nil {
		return driving.ReportRequest{}, err
	}
	return driving.ReportRequest{
		Repos:     repos,
		Window:    window,
		Summarize: b.Summarize,
		Combined:  b.Combined,
		Notify:    b.Notify,
	}, nil
}

func (s *Server) schedulerStatus(w http.ResponseWriter, r *http.Request) {
	if s.ports.Scheduler == nil {
		writeData(w, http.StatusOK, map[string]any{
			"state":   domain.SchedulerStopped,
			"history": []cycleResponse{},
		})
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, domain.ErrInvalidInput)
			return
		}
		limit = n
	}

	history, err := s.ports.Scheduler.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]cycleResponse, 0, len(history))
	for _, c := range history {
		out = append(out, cycleResponse(c))
	}
	writeData(w, http.StatusOK, map[string]any{
		"state":   s.ports.Scheduler.State(),
		"history": out,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &inputError{err: err}
	}
	return nil
}

// inputError marks a malformed request body.
type inputError struct{ err error }

func (e *inputError) Error() string { return "invalid request body: " + e.err.Error() }
func (e *inputError) Unwrap() error { return domain.ErrInvalidInput }

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("web: %v", err)
	}
	writeJSON(w, status, map[string]any{
		"status": "error",
		"error":  err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}
