package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ad-rotator/internal/core/port"
)

// ErrCycleRunning is returned when RunCycle is invoked while a sweep is
// already in progress. Overlapping sweeps are rejected, never queued.
var ErrCycleRunning = errors.New("rotation cycle already running")

// Cycle orchestrates one full sweep: credentials, eligibility, one update
// per creative, one outcome row per update, pacing between updates. It is
// strictly sequential within a sweep; the schedule that triggers sweeps is
// the caller's concern.
type Cycle struct {
	creds      port.CredentialSource
	filter     port.EligibilityFilter
	transactor port.UpdateTransactor
	store      port.OutcomeRepository
	accountID  string
	pause      time.Duration
	logger     *slog.Logger
	running    atomic.Bool
}

// NewCycle wires the pipeline together for one ad account.
func NewCycle(
	creds port.CredentialSource,
	filter port.EligibilityFilter,
	transactor port.UpdateTransactor,
	store port.OutcomeRepository,
	accountID string,
	pause time.Duration,
	logger *slog.Logger,
) *Cycle {
	return &Cycle{
		creds:      creds,
		filter:     filter,
		transactor: transactor,
		store:      store,
		accountID:  accountID,
		pause:      pause,
		logger:     logger,
	}
}

// Running reports whether a sweep is currently in progress.
func (c *Cycle) Running() bool {
	return c.running.Load()
}

// RunCycle performs one sweep. A credential failure is fatal for the cycle
// and returned; everything past that point is contained: a listing failure
// means nothing to do, a failed update becomes a FAILED outcome, a failed
// outcome append is logged and processing continues. The next scheduled
// cycle is the retry mechanism.
func (c *Cycle) RunCycle(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrCycleRunning
	}
	defer c.running.Store(false)

	log := c.logger.With(slog.String("cycle_id", uuid.NewString()))

	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		log.Error("acquiring access token", slog.Any("error", err))
		return err
	}

	pairs, err := c.filter.Eligible(ctx, token, c.accountID)
	if err != nil {
		// nothing to do this cycle; the next one retries
		log.Error("resolving eligible creatives", slog.Any("error", err))
		return nil
	}
	if len(pairs) == 0 {
		log.Info("no creatives eligible for rotation")
		return nil
	}

	attempts := 0
	for i, p := range pairs {
		if ctx.Err() != nil {
			log.Warn("cycle interrupted", slog.Int("completed", attempts))
			break
		}
		out := c.transactor.Apply(ctx, token, p.Creative)
		if err = c.store.Append(ctx, out); err != nil {
			log.Error("recording outcome",
				slog.String("creative_id", out.CreativeID), slog.Any("error", err))
		}
		attempts++

		if i < len(pairs)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(c.pause):
			}
		}
	}

	log.Info("cycle complete", slog.Int("attempts", attempts))
	return nil
}
