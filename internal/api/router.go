package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/pagescan/internal/settings"
)

// DefaultRequestTimeout bounds one request, scan included.
const DefaultRequestTimeout = 60 * time.Second

// NewRouter creates a chi router with all endpoints and middleware.
func NewRouter(scanner Scanner, store settings.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{scanner: scanner, store: store, logger: logger}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/scan", h.handleScan)
		r.Get("/settings/{userID}", h.handleGetSettings)
		r.Post("/settings/{userID}/toggle/{field}", h.handleToggleSetting)
	})

	return r
}
