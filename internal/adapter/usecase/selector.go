package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"ad-rotator/internal/core/port"
)

// maxHeadlineRunes is the display-length cap the Ads API enforces on
// headlines. Longer candidates are truncated to truncatedRunes plus an
// ellipsis marker so the total stays within the cap.
const (
	maxHeadlineRunes = 40
	truncatedRunes   = 37
	ellipsis         = "..."
)

// Selector picks fresh headlines from a depletable in-memory pool. The pool
// is loaded lazily from the corpus source, shrinks as headlines are offered
// (so no candidate is offered twice within one pool lifetime, even across
// different creatives) and reloads once exhausted. Per-creative uniqueness
// comes from the outcome ledger; the pool only provides cycle-local
// freshness.
//
// The mutex keeps the pool invariant intact if callers ever parallelize
// selection; the pipeline itself is sequential.
type Selector struct {
	mu     sync.Mutex
	pool   []string
	corpus port.HeadlineSource
	ledger port.HeadlineLedger
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSelector creates a selector over the given corpus and ledger.
func NewSelector(corpus port.HeadlineSource, ledger port.HeadlineLedger, logger *slog.Logger) *Selector {
	return &Selector{
		corpus: corpus,
		ledger: ledger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

// Select returns a headline for the creative that is not its current one
// and, as far as the ledger allows, has never been recorded for it. When
// every candidate has been used the full corpus is reloaded and, as a last
// resort, repetition is accepted rather than stalling the rotation. The
// only terminal failure is an unloadable or empty corpus.
func (s *Selector) Select(ctx context.Context, creativeID, currentHeadline string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pool) == 0 {
		if err := s.reload(ctx); err != nil {
			return "", err
		}
	}

	used, err := s.ledger.UsedHeadlines(ctx, creativeID)
	if err != nil {
		// ledger is best effort for selection quality, not correctness
		s.logger.Warn("used-headline lookup failed, selecting without history",
			slog.String("creative_id", creativeID), slog.Any("error", err))
		used = nil
	}

	available := s.filter(used, currentHeadline)
	if len(available) == 0 {
		s.logger.Warn("no unused headlines left, reloading full corpus",
			slog.String("creative_id", creativeID))
		if err = s.reload(ctx); err != nil {
			return "", err
		}
		available = s.filter(nil, currentHeadline)
		if len(available) == 0 {
			// corpus holds only the current headline; accept repetition
			s.logger.Warn("accepting headline repetition",
				slog.String("creative_id", creativeID))
			available = slices.Clone(s.pool)
		}
	}
	if len(available) == 0 {
		return "", fmt.Errorf("headline corpus is empty")
	}

	pick := available[s.rng.Intn(len(available))]
	if i := slices.Index(s.pool, pick); i >= 0 {
		s.pool = slices.Delete(s.pool, i, i+1)
	}
	return truncateHeadline(pick), nil
}

func (s *Selector) reload(ctx context.Context) error {
	headlines, err := s.corpus.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading headline corpus: %w", err)
	}
	s.pool = headlines
	s.logger.Info("headline pool reloaded", slog.Int("size", len(headlines)))
	return nil
}

// filter returns the pool entries that are neither used nor current.
func (s *Selector) filter(used map[string]struct{}, current string) []string {
	available := make([]string, 0, len(s.pool))
	for _, h := range s.pool {
		if h == current {
			continue
		}
		if _, ok := used[h]; ok {
			continue
		}
		available = append(available, h)
	}
	return available
}

func truncateHeadline(h string) string {
	runes := []rune(h)
	if len(runes) <= maxHeadlineRunes {
		return h
	}
	return string(runes[:truncatedRunes]) + ellipsis
}
