package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and scopes the
// context logger to it. Applied early in the chain so all subsequent
// handlers log with the same trace ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.Default().With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
