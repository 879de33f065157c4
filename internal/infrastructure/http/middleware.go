package httpserver

import (
	"context"
	"net/http"
	"time"

	"bluetec-catalog/internal/infrastructure/logx"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	traceIDKey   contextKey = "trace_id"
)

// withHeaderID propagates the id in header, minting a UUID when the client
// sent none, and echoes it on the response.
func withHeaderID(header string, key contextKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, id)))
		})
	}
}

func idFrom(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// accessLog attaches a request-scoped logger and logs one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		l := logx.L().With(
			zap.String("request_id", idFrom(r.Context(), requestIDKey)),
			zap.String("trace_id", idFrom(r.Context(), traceIDKey)),
		)
		next.ServeHTTP(ww, r.WithContext(logx.WithLogger(r.Context(), l)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		l.Info("http.request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logx.FromContext(r.Context()).Error("http.panic_recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
