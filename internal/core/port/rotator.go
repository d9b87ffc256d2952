package port

import (
	"context"

	"ad-rotator/internal/core/domain"
)

// HeadlineSource provides the candidate corpus, re-read in full on every
// pool reload so corpus edits take effect without a restart.
type HeadlineSource interface {
	Load(ctx context.Context) ([]string, error)
}

// HeadlineSelector picks a fresh headline for a creative: never one already
// recorded for that creative, never the current one, at most 40 display
// characters. It only fails when the corpus itself cannot be loaded.
type HeadlineSelector interface {
	Select(ctx context.Context, creativeID, currentHeadline string) (string, error)
}

// Pair is one rotation-eligible ad resolved to its creative, with defaults
// applied and mandatory fields verified.
type Pair struct {
	Ad       domain.Ad
	Creative domain.Creative
}

// EligibilityFilter resolves the account's ads to the creatives that need a
// headline rotation this cycle.
type EligibilityFilter interface {
	Eligible(ctx context.Context, token, accountID string) ([]Pair, error)
}

// UpdateTransactor performs one headline update and reports the outcome. It
// never persists anything; recording the outcome is the orchestrator's job.
type UpdateTransactor interface {
	Apply(ctx context.Context, token string, cr domain.Creative) domain.Outcome
}

// Rotator is the primary port into the rotation pipeline. RunCycle performs
// one full sweep and is safe to call from a timer and an HTTP trigger
// concurrently: overlapping calls are rejected, not queued.
type Rotator interface {
	RunCycle(ctx context.Context) error
	Running() bool
}
