package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/propview/estate-service/internal/platform/metrics"
)

// Metrics records per-route latency and error counts. The chi route pattern
// is used as the label, not the raw path, to keep cardinality bounded.
func Metrics(mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			mm.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
			if ww.Status() >= http.StatusBadRequest {
				mm.APIErrorsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}
