package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/mealplan/internal/logger"
)

// requestLogger logs each request and records it in the request metrics.
// Routes are labelled by pattern so ids do not explode metric cardinality.
func requestLogger(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			m.observeRequest(r.Method, route, status, elapsed)

			keyvals := []any{
				"request_id", chimiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"elapsed", elapsed,
			}
			switch {
			case status >= 500:
				logger.Error("Server error", keyvals...)
			case status >= 400:
				logger.Warn("Client error", keyvals...)
			default:
				logger.Debug("Request", keyvals...)
			}
		})
	}
}
