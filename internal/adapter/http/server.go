package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyquorum/climate-oracle/internal/subnet"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the subnet API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	orch       *subnet.Orchestrator
	logger     *slog.Logger
}

// NewServer creates the HTTP server and mounts all routes.
func NewServer(addr string, orch *subnet.Orchestrator, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		orch:   orch,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/network", s.handleNetworkStatus)
		r.Get("/network/emission", s.handleEmission)
		r.Get("/subnet/info", s.handleSubnetInfo)

		r.Get("/miners", s.handleListMiners)
		r.Post("/miners", s.handleRegisterMiner)
		r.Get("/miners/leaderboard", s.handleLeaderboard)
		r.Get("/miners/{uid}", s.handleGetMiner)
		r.Post("/miners/{uid}/predict", s.handleMinerPredict)

		r.Get("/validators", s.handleListValidators)
		r.Post("/validators", s.handleRegisterValidator)
		r.Get("/validators/{uid}", s.handleGetValidator)

		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/demo/{key}", s.handleRunDemo)

		r.Get("/challenges", s.handleListChallenges)
		r.Post("/challenges", s.handleRunChallenge)
		r.Post("/challenges/generate", s.handleGenerateChallenge)

		r.Post("/tempo/run", s.handleRunTempo)
		r.Post("/compare", s.handleCompare)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
