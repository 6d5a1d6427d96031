package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.With(s.optionalIdentity).Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.requireIdentity)

		r.Post("/logout", s.handleLogout)

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", s.handleSend)
			r.Get("/", s.handleListAll)
			r.Get("/unread", s.handleListUnread)
			r.Get("/next", s.handleFetchNext)
			r.Get("/{id}", s.handleFetchOne)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	return r
}
