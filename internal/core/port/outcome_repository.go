package port

import (
	"context"
	"time"

	"ad-rotator/internal/core/domain"
)

// HeadlineLedger is the read side of the outcome store the selector needs:
// which headlines were already offered for a creative. Both successful and
// failed attempts count as used, so a headline that failed for an unrelated
// reason is never retried and duplicate content is never produced.
type HeadlineLedger interface {
	UsedHeadlines(ctx context.Context, creativeID string) (map[string]struct{}, error)
}

// OutcomeRepository is the outbound port for the append-only outcome ledger.
// Append never overwrites or deletes; a failed Append is reported to the
// caller but must not abort the cycle that produced the outcome.
type OutcomeRepository interface {
	HeadlineLedger

	Append(ctx context.Context, out domain.Outcome) error
	// Recent returns the newest outcomes, optionally scoped to one creative
	// when creativeID is non-empty.
	Recent(ctx context.Context, creativeID string, limit int) ([]domain.Outcome, error)
	// Stats aggregates attempts over a period.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// StatsReq scopes an aggregation query. CreativeID is optional.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CreativeID *string
}

// StatsResp counts update attempts by result over the requested period.
type StatsResp struct {
	Attempts  int64
	Succeeded int64
	Failed    int64
}
