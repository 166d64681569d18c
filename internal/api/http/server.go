package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may delay shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the observation endpoints. It never mutates the shared
// state: multiple observers only ever see snapshots.
type Server struct {
	// state is the shared environment state being observed.
	state *environment.State
	// httpServer is the underlying HTTP server with the routed handler.
	httpServer *http.Server
}

// EnvironmentResponse is the JSON document served by GET /v1/environment.
type EnvironmentResponse struct {
	// Phase is the current half of the day/night cycle.
	Phase environment.Phase `json:"phase"`
	// TimeOfDay is the simulated clock value in [0,24).
	TimeOfDay float64 `json:"timeOfDay"`
	// IsDay reports whether the day phase is active.
	IsDay bool `json:"isDay"`
	// IsStorm reports whether a storm is running.
	IsStorm bool `json:"isStorm"`
	// StormEndsAt is the nominal end of the active storm, omitted otherwise.
	StormEndsAt *time.Time `json:"stormEndsAt,omitempty"`
	// Lighting is the profile derived from the current time of day.
	Lighting environment.LightingProfile `json:"lighting"`
}

// NewServer wires the observation routes around the shared state.
func NewServer(listenAddress string, state *environment.State) *Server {
	s := &Server{
		state: state,
	}

	router := mux.NewRouter()
	router.HandleFunc("/v1/environment", s.handleEnvironment).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	//nolint:exhaustruct // Remaining http.Server fields keep their defaults.
	s.httpServer = &http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the routed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is canceled, then shuts down gracefully and
// blocks until in-flight requests finish or the shutdown timeout expires.
func (s *Server) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "http-api")

	logger.InfoKV(ctx, "HTTP API listening", "listen_address", s.httpServer.Addr)

	// Done channel is closed after Shutdown finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.ErrorKV(ctx, "HTTP shutdown failed", "error", err)
		}

		close(done)
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	<-done
	logger.Info(ctx, "HTTP server stopped")

	return nil
}

// handleEnvironment serves the current snapshot with its lighting profile.
func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()

	response := EnvironmentResponse{
		Phase:     snap.Phase,
		TimeOfDay: snap.TimeOfDay,
		IsDay:     snap.IsDay(),
		IsStorm:   snap.IsStorm,
		Lighting:  environment.ComputeLightingProfile(snap.TimeOfDay),
	}
	if snap.IsStorm {
		endsAt := snap.StormEndsAt
		response.StormEndsAt = &endsAt
	}

	writeJSON(r.Context(), w, http.StatusOK, response)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON renders a JSON response body with the provided status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.ErrorKV(ctx, "Encode response failed", "error", err)
	}
}
