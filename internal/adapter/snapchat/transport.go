package snapchat

import (
	"io"
	"math"
	"net/http"
	"time"
)

// retryTransport wraps an http.RoundTripper with bounded retries and
// exponential backoff for transient failures: network errors and the
// 429/500/502/503/504 statuses. Request bodies are replayed via GetBody,
// which net/http sets for all the body types this client uses.
type retryTransport struct {
	base         http.RoundTripper
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

func newRetryTransport(base http.RoundTripper) *retryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &retryTransport{
		base:         base,
		maxAttempts:  5,
		initialDelay: time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt < t.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(t.nextDelay(attempt - 1)):
			}
			if req.GetBody != nil {
				if req.Body, err = req.GetBody(); err != nil {
					return nil, err
				}
			}
		}

		resp, err = t.base.RoundTrip(req)
		if err != nil {
			if req.GetBody == nil && req.Body != nil {
				// body consumed and not replayable, give up
				return nil, err
			}
			continue
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt < t.maxAttempts-1 {
			// drain so the connection can be reused
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
	}
	return resp, err
}

func (t *retryTransport) nextDelay(attempt int) time.Duration {
	delay := float64(t.initialDelay) * math.Pow(t.multiplier, float64(attempt))
	if delay > float64(t.maxDelay) {
		return t.maxDelay
	}
	return time.Duration(delay)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
