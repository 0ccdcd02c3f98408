package http

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(s.rateLimit).Post("/login", s.loginHandler)
		r.Post("/logout", s.logoutHandler)
	})

	r.Route("/api/drawings", func(r chi.Router) {
		r.Get("/", s.listHandler)
		r.Post("/save", s.saveHandler)
		r.Get("/{id}", s.getHandler)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		reqID := middleware.GetReqID(r.Context())
		if reqID != "" {
			ww.Header().Set(middleware.RequestIDHeader, reqID)
		}
		r = r.WithContext(logging.WithRequestID(r.Context(), reqID))

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error(r.Context(), "http request", args...)
		} else {
			s.logger.Info(r.Context(), "http request", args...)
		}
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.loginLimiter != nil && !s.loginLimiter.Allow() {
			w.Header().Set("Retry-After", "60")
			sendError(w, "Too many login attempts", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
