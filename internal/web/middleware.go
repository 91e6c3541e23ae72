package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// requestLogger assigns each request an ID, echoes it in the response, and
// logs one structured line per request with route-level metrics.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			// Route pattern is only known after routing; keeps the metric
			// labels low-cardinality.
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			duration := time.Since(start)
			webRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			webRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

			logger.Debug().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", duration).
				Msg("Request handled")
		})
	}
}
