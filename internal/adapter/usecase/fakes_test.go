package usecase

import (
	"context"
	"errors"
	"sync"

	"ad-rotator/internal/core/domain"
	"ad-rotator/internal/core/port"
)

// fakeCorpus serves a fixed candidate list and counts loads.
type fakeCorpus struct {
	lines []string
	loads int
	err   error
}

func (f *fakeCorpus) Load(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.loads++
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

// fakeStore implements port.OutcomeRepository in memory.
type fakeStore struct {
	mu        sync.Mutex
	appended  []domain.Outcome
	appendErr error
	usedErr   error
}

func (f *fakeStore) Append(_ context.Context, out domain.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, out)
	return nil
}

func (f *fakeStore) UsedHeadlines(_ context.Context, creativeID string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usedErr != nil {
		return nil, f.usedErr
	}
	used := make(map[string]struct{})
	for _, out := range f.appended {
		if out.CreativeID == creativeID && out.NewHeadline != "" {
			used[out.NewHeadline] = struct{}{}
		}
	}
	return used, nil
}

func (f *fakeStore) Recent(context.Context, string, int) ([]domain.Outcome, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Stats(context.Context, port.StatsReq) (*port.StatsResp, error) {
	return nil, errors.New("not implemented")
}

// fakeAPI implements port.AdsAPI with canned responses and call recording.
type fakeAPI struct {
	ads       []domain.Ad
	listErr   error
	creatives map[string]domain.Creative
	getErr    map[string]error
	verdict   *port.UpdateVerdict
	updateErr error
	updates   []domain.Creative
}

func (f *fakeAPI) ListActiveAds(context.Context, string, string) ([]domain.Ad, error) {
	return f.ads, f.listErr
}

func (f *fakeAPI) GetCreative(_ context.Context, _ string, creativeID string) (*domain.Creative, error) {
	if err := f.getErr[creativeID]; err != nil {
		return nil, err
	}
	cr, ok := f.creatives[creativeID]
	if !ok {
		return nil, errors.New("creative not found")
	}
	return &cr, nil
}

func (f *fakeAPI) UpdateCreative(_ context.Context, _, _ string, cr domain.Creative) (*port.UpdateVerdict, error) {
	f.updates = append(f.updates, cr)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.verdict, nil
}

// fakeSelector returns a fixed headline.
type fakeSelector struct {
	headline string
	err      error
}

func (f *fakeSelector) Select(context.Context, string, string) (string, error) {
	return f.headline, f.err
}

// fakeCreds hands out a token or fails.
type fakeCreds struct {
	token string
	err   error
	block chan struct{}
}

func (f *fakeCreds) AccessToken(context.Context) (string, error) {
	if f.block != nil {
		<-f.block
	}
	return f.token, f.err
}

// fakeFilter returns canned pairs.
type fakeFilter struct {
	pairs []port.Pair
	err   error
}

func (f *fakeFilter) Eligible(context.Context, string, string) ([]port.Pair, error) {
	return f.pairs, f.err
}

// fakeTransactor maps each creative to a canned outcome.
type fakeTransactor struct {
	status domain.OutcomeStatus
	calls  []string
}

func (f *fakeTransactor) Apply(_ context.Context, _ string, cr domain.Creative) domain.Outcome {
	f.calls = append(f.calls, cr.ID)
	return domain.Outcome{
		CreativeID:  cr.ID,
		NewHeadline: "New Headline",
		Status:      f.status,
	}
}
