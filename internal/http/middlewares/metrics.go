package middlewares

import (
	"net/http"
	"time"

	"github.com/umdev/infoeste/internal/metrics"
)

// WithMetrics registra latencia, total y requests en vuelo por ruta normalizada.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := metrics.NormalizePath(r.URL.Path)
			inflight := metrics.HTTPInflight.WithLabelValues(r.Method, path)
			inflight.Inc()
			defer inflight.Dec()

			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			metrics.ObserveRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
