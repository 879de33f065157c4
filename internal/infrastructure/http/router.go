package httpserver

import (
	"net/http"

	"bluetec-catalog/internal/infrastructure/http/openapi"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter mounts the catalog API, probes and docs behind the request
// middlewares.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(
		withHeaderID("X-Request-ID", requestIDKey),
		withHeaderID("X-Trace-Id", traceIDKey),
		accessLog,
		recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/readyz", s.readyz)

	openapi.HandlerWithOptions(s, openapi.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})

	mountDocs(r)
	return r
}

// readyz probes the session backend when one is configured.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			s.log.Warn("http.not_ready", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}
