// Package httpapi exposes tools.Surface over HTTP: POST /tools/<name>, plus
// the GET /health and GET /tools endpoints from spec section 6. Router
// shape (chi.NewRouter, route registration, manual json.Encoder responses)
// is grounded on the NeboLoop-nebo relay's chi.Router usage.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnemo-systems/mnemo/internal/tools"
	"github.com/mnemo-systems/mnemo/pkg/version"
)

// Server is the HTTP transport binding for tools.Surface.
type Server struct {
	router    chi.Router
	surface   *tools.Surface
	logger    *slog.Logger
	startedAt time.Time
}

// New builds the router with every tool endpoint registered.
func New(surface *tools.Surface, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		surface:   surface,
		logger:    logger,
		startedAt: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/tools", s.handleListTools)

	r.Post("/tools/remember", jsonHandler(s.surface.Remember))
	r.Post("/tools/recall", jsonHandler(s.surface.Recall))
	r.Post("/tools/pin", jsonHandler(s.surface.Pin))
	r.Post("/tools/unpin", jsonHandler(s.surface.Unpin))
	r.Post("/tools/forget", jsonHandler(s.surface.Forget))
	r.Post("/tools/feedback", jsonHandler(s.surface.Feedback))

	s.router = r
	return s
}

// ServeHTTP satisfies http.Handler so callers can mount Server directly or
// pass it to http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}

type healthResponse struct {
	Status            string `json:"status"`
	Version           string `json:"version"`
	UptimeSeconds     int64  `json:"uptime_seconds"`
	StoreConnected    bool   `json:"store_connected"`
	SearchAvailable   bool   `json:"search_available"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeConnected := s.surface.Store.Checkpoint(r.Context()) == nil
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Version:         version.Version,
		UptimeSeconds:   int64(time.Since(s.startedAt).Seconds()),
		StoreConnected:  storeConnected,
		SearchAvailable: s.surface.TextSearcher != nil,
	})
}

type toolCatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []toolCatalogEntry{
		{Name: "remember", Description: "Store a new memory."},
		{Name: "recall", Description: "Search memories by hybrid relevance."},
		{Name: "pin", Description: "Pin one or a batch of memories."},
		{Name: "unpin", Description: "Unpin one or a batch of memories."},
		{Name: "forget", Description: "Soft- or hard-delete a memory."},
		{Name: "feedback", Description: "Record helpful/not-helpful feedback."},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
