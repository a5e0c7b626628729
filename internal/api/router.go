package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(newCORS(allowedOrigins).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/portfolio", h.GetPortfolio)
		r.Get("/months", h.ListMonths)
		r.Get("/months/{month}", h.GetMonth)
		r.Get("/metrics", h.GetMetrics)
		r.Post("/refresh", h.Refresh)
		r.Post("/upload", h.Upload)
		r.Get("/templates/{name}", h.DownloadTemplate)
	})

	return r
}
