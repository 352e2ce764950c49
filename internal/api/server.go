package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dgallion1/batnadoc/internal/config"
	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/form"
	"github.com/dgallion1/batnadoc/internal/generate"
	"github.com/dgallion1/batnadoc/internal/history"
	"github.com/dgallion1/batnadoc/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StatsSource reports generation latency for the stats endpoint.
type StatsSource interface {
	Model() string
	LatencyStats() *generate.LLMStats
}

// Server is the HTTP front end for batnadoc.
type Server struct {
	router chi.Router
	store  *session.Store
	ctrl   *session.Controller
	stats  StatsSource
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(ctrl *session.Controller, store *session.Store, stats StatsSource, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: store,
		ctrl:  ctrl,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	// Browser pages.
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(s.store, s.log))

		r.Get("/", s.handlePage)
		r.Post("/generate", s.handlePageGenerate)
		r.Post("/new", s.handlePageNew)
		r.Post("/clear-fields", s.handlePageClearFields)
		r.Post("/history/{id}/view", s.handlePageView)
		r.Post("/history/{id}/delete", s.handlePageDelete)
		r.Post("/history/clear", s.handlePageClearHistory)
		r.Get("/export/{format}", s.handleExport)
	})

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		r.Get("/stats/llm", s.handleLLMStats)
		r.Get("/fields", s.handleFields)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(s.store, s.log))

			r.Post("/generate", s.handleGenerate)
			r.Get("/document", s.handleDocument)
			r.Post("/document/new", s.handleNewDocument)
			r.Get("/history", s.handleHistory)
			r.Post("/history/{id}/view", s.handleView)
			r.Delete("/history/{id}", s.handleDelete)
			r.Delete("/history", s.handleClearHistory)
			r.Get("/export/{format}", s.handleExport)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrIncompleteInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrGenerationFailure):
		return http.StatusBadGateway
	case errors.Is(err, history.ErrNotFound), errors.Is(err, session.ErrNoDocument):
		return http.StatusNotFound
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	var inc *form.IncompleteError
	if errors.As(err, &inc) {
		writeJSON(w, code, map[string]any{"error": err.Error(), "missing": inc.Missing})
		return
	}
	jsonError(w, err.Error(), code)
}
