package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker - зависимость, которую проверяет /healthz
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health отвечает 200, если все проверки прошли, иначе 503.
func Health(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		result := map[string]string{}
		code := http.StatusOK
		for name, check := range checks {
			if err := check.HealthCheck(ctx); err != nil {
				result[name] = err.Error()
				code = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		writeJSON(w, code, map[string]any{"status": http.StatusText(code), "checks": result})
	}
}
