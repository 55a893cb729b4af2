// Package web serves the Sentinel dashboard and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
	"github.com/custodia-labs/sentinel/internal/markdown"
)

// requestTimeout bounds a single request. Report generation with a summary
// can take minutes.
const requestTimeout = 5 * time.Minute

// shutdownTimeout is how long in-flight requests get after ctx is cancelled.
const shutdownTimeout = 10 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

// Ports holds the services the server drives. Scheduler may be nil.
type Ports struct {
	Subscriptions driving.SubscriptionService
	Reports       driving.ReportService
	Scheduler     driving.Scheduler
}

// Server handles HTTP requests.
type Server struct {
	Router *chi.Mux
	ports  Ports
	pages  *template.Template
}

// NewServer creates the server and its routes.
func NewServer(ports Ports) (*Server, error) {
	if ports.Subscriptions == nil || ports.Reports == nil {
		return nil, errors.New("web: subscription and report services are required")
	}

	pages, err := template.New("").Funcs(template.FuncMap{
		"markdown": markdown.SafeHTML,
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.UTC().Format("2006-01-02 15:04 UTC")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{ports: ports, pages: pages}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.healthCheck)

	// Dashboard pages
	r.Get("/", s.dashboard)
	r.Get("/reports/{name}", s.reportPage)

	// API endpoints
	r.Route("/api", func(r chi.Router) {
		r.Get("/subscriptions", s.listSubscriptions)
		r.Post("/subscriptions", s.subscribe)
		r.Delete("/subscriptions/{owner}/{name}", s.unsubscribe)

		r.Get("/reports", s.listReports)
		r.Post("/reports", s.generateReports)
		r.Get("/reports/{name}", s.readReport)

		r.Get("/scheduler", s.schedulerStatus)
	})

	s.Router = r
}

// ServeHTTP lets the server be mounted or tested directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("web: shutdown: %v", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "sentinel",
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRepo), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrSchedulerRunning):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
