package controller

import (
	"net/http"
	"strconv"
	"time"

	"emailfinder/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// WithMetrics observes every request in metrics.HTTPRequestDuration, labelled
// by the matched chi route pattern so path parameters do not blow up
// cardinality. Unmatched requests are labelled "unmatched".
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recordStatus(w)

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
