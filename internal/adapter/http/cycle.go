package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
)

// handleCycleRun triggers a sweep outside the regular schedule. The sweep
// runs in the background and the request returns immediately: HTTP 202 when
// started, HTTP 409 when one is already in progress.
func (h *Handler) handleCycleRun(w http.ResponseWriter, r *http.Request) {
	if h.rotator.Running() {
		http.Error(w, "cycle already running", http.StatusConflict)
		return
	}

	// detach from the request context so the sweep outlives the response
	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.rotator.RunCycle(ctx); err != nil {
			h.logger.Error("manual cycle error", slog.Any("error", err))
		}
	}()

	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("cycle started"))
}
