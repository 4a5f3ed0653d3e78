package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// HealthStatus is the body served on /health
type HealthStatus struct {
	Status string `json:"status"`
	Bot    string `json:"bot"`
}

// HealthServer answers liveness probes for the hosting platform
type HealthServer struct {
	server *http.Server
}

// NewHealthServer creates a health server listening on port
func NewHealthServer(port int) *HealthServer {
	return &HealthServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewHealthHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewHealthHandler returns the routes served by the health server
func NewHealthHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("grower bot is running"))
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(HealthStatus{Status: "healthy", Bot: "grower"}); err != nil {
			log.Errorf("Failed to encode health response: %v", err)
		}
	})

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (h *HealthServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Health server listening on %s", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("health server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health server shutdown: %w", err)
	}
	return nil
}
