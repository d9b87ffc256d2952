package port

import (
	"context"

	"ad-rotator/internal/core/domain"
)

// CredentialSource exchanges the configured refresh token for a bearer
// access token. The token's expiry is not part of the contract; a fresh
// token is obtained once per cycle.
type CredentialSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// AdsAPI is the outbound port to the remote Ads API. The listing call is
// parameterized server-side to return only ACTIVE ads; review-status
// filtering stays with the caller.
type AdsAPI interface {
	ListActiveAds(ctx context.Context, token, accountID string) ([]domain.Ad, error)
	GetCreative(ctx context.Context, token, creativeID string) (*domain.Creative, error)
	// UpdateCreative submits the full creative object (the API rejects
	// partial patches) and returns the remote verdict. A transport-level
	// failure returns an error instead of a verdict.
	UpdateCreative(ctx context.Context, token, accountID string, cr domain.Creative) (*UpdateVerdict, error)
}

// UpdateVerdict is the interpreted response of one creative update.
// RequestStatus "SUCCESS" means the mutation was accepted; otherwise
// ErrorReason carries the most specific reason the API provided and
// RawBody the response text for diagnostics.
type UpdateVerdict struct {
	RequestStatus string
	ErrorReason   string
	RawBody       string
}
