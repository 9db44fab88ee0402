package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/controlcenter/internal/aggregate"
	"github.com/hamed0406/controlcenter/internal/httpapi/middleware"
	"github.com/hamed0406/controlcenter/internal/registry"
)

type Server struct {
	Logger      *zap.Logger
	Registry    *registry.Registry
	Aggregator  *aggregate.Aggregator
	ServiceName string
	Version     string

	// Rate limit for all endpoints; 0 disables it.
	RPM   int
	Burst int
}

func NewServer(l *zap.Logger, reg *registry.Registry, agg *aggregate.Aggregator, name, version string) *Server {
	return &Server{
		Logger:      l,
		Registry:    reg,
		Aggregator:  agg,
		ServiceName: name,
		Version:     version,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RPM, s.Burst))

	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/services", s.handleServices)
	r.Get("/dashboard", s.handleDashboard)

	return r
}

// handleHealth is the aggregator's own liveness: constant shape, no
// downstream I/O, so orchestration can tell "aggregator down" apart
// from "aggregator up, dependency down".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":      true,
		"service": s.ServiceName,
		"version": s.Version,
	})
}

// handleStatus computes a fresh snapshot per request; staleness is
// never acceptable for a health check, so there is no cache. The
// endpoint itself always answers 200: downstream failures are data in
// the body, never a 5xx, so dashboards can always parse it.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := s.Aggregator.Snapshot(r.Context(), s.Registry)

	s.Logger.Info("status_served",
		zap.Bool("ok", snap.OverallOK),
		zap.Duration("took", time.Since(start)),
	)
	writeJSON(w, statusResponse{snap})
}

// handleServices lists the configured registry without probing.
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	entries := s.Registry.Entries()
	out := make([]serviceInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, serviceInfo{
			Name:      e.Name,
			Kind:      e.Kind,
			Target:    e.Target(),
			TimeoutMS: float64(e.Timeout) / float64(time.Millisecond),
		})
	}
	writeJSON(w, map[string]any{"services": out})
}

type serviceInfo struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Target    string  `json:"target"`
	TimeoutMS float64 `json:"timeout_ms"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
