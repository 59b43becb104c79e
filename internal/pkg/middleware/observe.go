package middleware

import (
	"net/http"
	"strconv"
	"time"

	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Observe registra log de acesso e métricas por rota. A rota é o padrão do ServeMux
// (r.Pattern), evitando cardinalidade por ID.
func Observe(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPLatency.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			log.Info("HTTP", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": elapsed.Milliseconds(),
			})
		})
	}
}
