package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/chartkeep/chartkeep/internal/chart"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz reports 503 until the store is ready or while any backend fails its
// readiness check.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.store.State() != chart.StateReady {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()
	for _, rc := range s.ready {
		if rc == nil {
			continue
		}
		if err := rc.Ready(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
