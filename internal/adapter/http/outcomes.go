package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ad-rotator/internal/core/domain"
)

const (
	defaultOutcomeLimit = 50
	maxOutcomeLimit     = 500
)

// outcomeDTO is the JSON shape of one audit row.
type outcomeDTO struct {
	ID            int64     `json:"id"`
	CreativeID    string    `json:"creative_id"`
	PriorHeadline string    `json:"prior_headline"`
	NewHeadline   string    `json:"new_headline"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// handleOutcomes returns the newest outcome rows for audit. Optional query
// parameters: `creative_id` scopes to one creative, `limit` caps the row
// count (default 50, max 500). Invalid limits produce HTTP 400.
func (h *Handler) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	limit := defaultOutcomeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxOutcomeLimit)
	}

	outcomes, err := h.store.Recent(r.Context(), r.URL.Query().Get("creative_id"), limit)
	if err != nil {
		h.logger.Error("outcomes query error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	dtos := make([]outcomeDTO, 0, len(outcomes))
	for _, o := range outcomes {
		dtos = append(dtos, toDTO(o))
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(dtos); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func toDTO(o domain.Outcome) outcomeDTO {
	return outcomeDTO{
		ID:            o.ID,
		CreativeID:    o.CreativeID,
		PriorHeadline: o.PriorHeadline,
		NewHeadline:   o.NewHeadline,
		Status:        string(o.Status),
		ErrorMessage:  o.ErrorMessage,
		CreatedAt:     o.CreatedAt,
	}
}
