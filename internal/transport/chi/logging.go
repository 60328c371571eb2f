package chi

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/logger"
)

// RequestLoggerMiddleware stores a request-scoped logger in the context,
// tagged with the request id when one is present. Handlers recover it via
// logger.FromContext.
func RequestLoggerMiddleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base
			if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
				l = base.With(zap.String("request_id", reqID))
			}
			next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
		})
	}
}
