package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
)

// Checker reports whether a downstream dependency is serving.
type Checker interface {
	Check(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports 200 only when every named dependency answers its health check.
func Ready(deps map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(deps))
		for name, c := range deps {
			if err := c.Check(ctx); err != nil {
				result[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}

		httpx.WriteJSON(w, status, result)
	}
}
