package web

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}

// requestLogger attaches a per-request logrus entry to the context and logs
// each completed request
func requestLogger(base logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := base.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     chimiddleware.GetReqID(r.Context()),
			})

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(r.Context(), ctxKeyLog{}, log)
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.WithFields(logrus.Fields{
				"http.resp.status":  ww.Status(),
				"http.resp.bytes":   ww.BytesWritten(),
				"http.resp.took_ms": time.Since(start).Milliseconds(),
			}).Debug("request complete")
		})
	}
}

// logger returns the request's logger, falling back to the server logger
func (s *Server) logger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return s.log
}
