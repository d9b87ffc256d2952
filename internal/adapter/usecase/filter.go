package usecase

import (
	"context"
	"log/slog"
	"strings"

	"ad-rotator/internal/core/domain"
	"ad-rotator/internal/core/port"
)

// Filter resolves the account's ads to the creatives eligible for headline
// rotation: ads that are ACTIVE yet review-REJECTED, whose creative carries
// all mandatory delivery fields after defaulting.
type Filter struct {
	api      port.AdsAPI
	defaults domain.CreativeDefaults
	logger   *slog.Logger
}

// NewFilter creates the eligibility filter with the configured mandatory
// field fallbacks.
func NewFilter(api port.AdsAPI, defaults domain.CreativeDefaults, logger *slog.Logger) *Filter {
	return &Filter{api: api, defaults: defaults, logger: logger}
}

// Eligible lists the account's ACTIVE ads, keeps the rotation-eligible ones
// and resolves each to its creative. Ineligible ads are dropped without
// per-ad logging, only an aggregate count. One creative failing to fetch or
// failing the mandatory-field gate does not stop the rest.
func (f *Filter) Eligible(ctx context.Context, token, accountID string) ([]port.Pair, error) {
	ads, err := f.api.ListActiveAds(ctx, token, accountID)
	if err != nil {
		return nil, err
	}

	eligible := make([]domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.RotationEligible() {
			eligible = append(eligible, ad)
		}
	}
	f.logger.Info("filtered ads",
		slog.Int("fetched", len(ads)),
		slog.Int("eligible", len(eligible)))

	pairs := make([]port.Pair, 0, len(eligible))
	for _, ad := range eligible {
		cr, err := f.api.GetCreative(ctx, token, ad.CreativeID)
		if err != nil {
			f.logger.Error("fetching creative failed, skipping",
				slog.String("creative_id", ad.CreativeID), slog.Any("error", err))
			continue
		}
		cr.ApplyDefaults(f.defaults)
		if missing := cr.MissingFields(); len(missing) > 0 {
			f.logger.Warn("creative skipped, missing mandatory fields",
				slog.String("creative_id", cr.ID),
				slog.String("missing", strings.Join(missing, ", ")))
			continue
		}
		pairs = append(pairs, port.Pair{Ad: ad, Creative: *cr})
	}

	f.logger.Info("prepared creatives for headline update", slog.Int("count", len(pairs)))
	return pairs, nil
}
