package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"finboard/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// OpsServer is the operational sidecar: health probes and pprof, kept off
// the public dashboard port.
type OpsServer struct {
	router *chi.Mux
	svc    *app.DashboardService
}

// NewOpsServer creates the ops router with its middleware stack.
func NewOpsServer(svc *app.DashboardService) *OpsServer {
	s := &OpsServer{
		router: chi.NewRouter(),
		svc:    svc,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)
	s.router.Mount("/debug", middleware.Profiler())

	return s
}

func (s *OpsServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReadyz confirms the dataset snapshot is loaded and reports its shape.
func (s *OpsServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	appCtx := s.svc.Context()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"ready":       true,
		"snapshot_id": appCtx.Snapshot.String(),
		"data_hash":   appCtx.Fingerprint.Short(),
		"rows":        appCtx.Cleaned.RowCount(),
		"groups":      appCtx.Summary.GroupCount(),
		"loaded_at":   appCtx.LoadedAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("[Ops] readyz encode failed: %v", err)
	}
}

// Start blocks serving the ops endpoints.
func (s *OpsServer) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
