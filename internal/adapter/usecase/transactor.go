package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ad-rotator/internal/core/domain"
	"ad-rotator/internal/core/port"
)

// Transactor performs one headline update against the remote API and maps
// the result, whatever it is, to an Outcome. It never persists anything and
// never returns an error: every failure mode becomes a FAILED outcome for
// the orchestrator to record.
type Transactor struct {
	api       port.AdsAPI
	selector  port.HeadlineSelector
	accountID string
	logger    *slog.Logger
}

// NewTransactor creates a transactor bound to one ad account.
func NewTransactor(api port.AdsAPI, selector port.HeadlineSelector, accountID string, logger *slog.Logger) *Transactor {
	return &Transactor{api: api, selector: selector, accountID: accountID, logger: logger}
}

// Apply validates the creative, selects a fresh headline, submits the full
// object update and interprets the verdict. Known-invalid input fails fast
// without touching the network.
func (t *Transactor) Apply(ctx context.Context, token string, cr domain.Creative) domain.Outcome {
	prior := cr.Headline
	if prior == "" {
		prior = cr.Name
	}
	out := domain.Outcome{
		CreativeID:    cr.ID,
		PriorHeadline: prior,
		Status:        domain.OutcomeFailed,
		CreatedAt:     time.Now().UTC(),
	}

	if missing := cr.MissingFields(); len(missing) > 0 {
		out.ErrorMessage = fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
		t.logger.Error("update rejected before submission",
			slog.String("creative_id", cr.ID), slog.String("error", out.ErrorMessage))
		return out
	}

	headline, err := t.selector.Select(ctx, cr.ID, prior)
	if err != nil {
		out.ErrorMessage = fmt.Sprintf("selecting headline: %s", err)
		t.logger.Error("headline selection failed",
			slog.String("creative_id", cr.ID), slog.Any("error", err))
		return out
	}
	out.NewHeadline = headline
	cr.Headline = headline

	verdict, err := t.api.UpdateCreative(ctx, token, t.accountID, cr)
	if err != nil {
		out.ErrorMessage = err.Error()
		t.logger.Error("creative update failed",
			slog.String("creative_id", cr.ID), slog.Any("error", err))
		return out
	}

	if verdict.RequestStatus == "SUCCESS" {
		out.Status = domain.OutcomeSuccess
		out.ErrorMessage = ""
		t.logger.Info("creative updated",
			slog.String("creative_id", cr.ID), slog.String("headline", headline))
		return out
	}

	reason := verdict.ErrorReason
	if reason == "" {
		reason = fmt.Sprintf("unexpected response: %s", verdict.RawBody)
	}
	out.ErrorMessage = reason
	t.logger.Error("creative update rejected",
		slog.String("creative_id", cr.ID), slog.String("reason", reason))
	return out
}
