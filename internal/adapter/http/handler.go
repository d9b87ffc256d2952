package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ad-rotator/internal/core/port"
)

// Handler is the inbound HTTP adapter exposing the ops surface: health,
// outcome audit, aggregate stats and a manual sweep trigger. It holds the
// rotator and the outcome store plus a logger for structured logging.
type Handler struct {
	rotator port.Rotator
	store   port.OutcomeRepository
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured on a new
// chi.Router.
func NewHandler(rotator port.Rotator, store port.OutcomeRepository, logger *slog.Logger) *Handler {
	h := &Handler{rotator: rotator, store: store, logger: logger}
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/outcomes", h.handleOutcomes)
		r.Get("/stats/overview", h.handleStatsOverview)
		r.Post("/cycle/run", h.handleCycleRun)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
