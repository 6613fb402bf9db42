package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ghtimeline/timeline/pkg/logger"
)

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(context.Context) error

// LivenessHandler always answers 200 while the process is up.
func LivenessHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// HealthCheckHandler runs every named check with the request context and
// answers 200 "ready" or 503 "not_ready" listing the failed checks.
func HealthCheckHandler(log *slog.Logger, checks map[string]CheckFunc) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component(name),
					logger.Error(err),
				)
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"success": false,
				"status":  "not_ready",
				"failed":  failed,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ready"})
	}
}

// RunChecks executes checks once, logging each outcome, and returns the
// names of the failed ones.
func RunChecks(ctx context.Context, log *slog.Logger, checks map[string]CheckFunc) []string {
	var failed []string
	for name, check := range checks {
		if err := check(ctx); err != nil {
			log.WarnContext(ctx, "startup check failed", logger.Component(name), logger.Error(err))
			failed = append(failed, name)
			continue
		}
		log.InfoContext(ctx, "startup check passed", logger.Component(name))
	}
	return failed
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
