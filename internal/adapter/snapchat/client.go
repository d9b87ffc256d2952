package snapchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ad-rotator/internal/config/configs"
	"ad-rotator/internal/core/domain"
	"ad-rotator/internal/core/port"
)

// Client talks to the Snapchat Ads API. It implements both
// port.CredentialSource (OAuth refresh-token exchange) and port.AdsAPI
// (listing, creative fetch, creative update). Transient transport failures
// are retried by the wrapped retryTransport; callers see only the final
// result.
type Client struct {
	httpClient      *http.Client
	apiBaseURL      string
	accountsBaseURL string
	clientID        string
	clientSecret    string
	refreshToken    string
	logger          *slog.Logger
}

// NewClient builds a client from configuration. The underlying http.Client
// retries 429/5xx with exponential backoff and bounded attempts.
func NewClient(cfg configs.Snapchat, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: newRetryTransport(nil),
			Timeout:   2 * time.Minute,
		},
		apiBaseURL:      strings.TrimRight(cfg.APIBaseURL.String(), "/"),
		accountsBaseURL: strings.TrimRight(cfg.AccountsBaseURL.String(), "/"),
		clientID:        cfg.ClientID,
		clientSecret:    cfg.ClientSecret,
		refreshToken:    cfg.RefreshToken,
		logger:          logger,
	}
}

// AccessToken exchanges the configured refresh token for a bearer token.
// Only the access_token field of the response is relied upon.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsBaseURL+"/login/oauth2/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("refreshing access token: %w", err)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token: %s", body)
	}
	return tok.AccessToken, nil
}

// ListActiveAds fetches the account's ads with the API-side status=ACTIVE
// filter applied. Review-status filtering is left to the caller.
func (c *Client) ListActiveAds(ctx context.Context, token, accountID string) ([]domain.Ad, error) {
	endpoint := fmt.Sprintf("%s/v1/adaccounts/%s/ads?status=ACTIVE", c.apiBaseURL, url.PathEscape(accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("listing active ads: %w", err)
	}
	var resp struct {
		Ads []struct {
			Ad adPayload `json:"ad"`
		} `json:"ads"`
	}
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding ads response: %w", err)
	}
	ads := make([]domain.Ad, 0, len(resp.Ads))
	for _, entry := range resp.Ads {
		ads = append(ads, entry.Ad.toDomain())
	}
	c.logger.Debug("fetched ads with status=ACTIVE", slog.Int("count", len(ads)))
	return ads, nil
}

// GetCreative fetches the full creative record by id.
func (c *Client) GetCreative(ctx context.Context, token, creativeID string) (*domain.Creative, error) {
	endpoint := fmt.Sprintf("%s/v1/creatives/%s", c.apiBaseURL, url.PathEscape(creativeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching creative %s: %w", creativeID, err)
	}
	var resp struct {
		Creatives []struct {
			Creative creativePayload `json:"creative"`
		} `json:"creatives"`
	}
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding creative response: %w", err)
	}
	if len(resp.Creatives) == 0 || resp.Creatives[0].Creative.ID == "" {
		return nil, fmt.Errorf("creative %s not present in response", creativeID)
	}
	cr := resp.Creatives[0].Creative.toDomain()
	return &cr, nil
}

// UpdateCreative submits the complete creative object with its new headline.
// A 2xx response yields a verdict for the transactor to interpret; anything
// else is returned as an error carrying the response body.
func (c *Client) UpdateCreative(ctx context.Context, token, accountID string, cr domain.Creative) (*port.UpdateVerdict, error) {
	payload := updateRequest{Creatives: []creativePayload{creativeToPayload(accountID, cr)}}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v1/adaccounts/%s/creatives", c.apiBaseURL, url.PathEscape(accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("updating creative %s: %w", cr.ID, err)
	}
	var resp struct {
		RequestStatus string `json:"request_status"`
		Creatives     []struct {
			SubRequestErrorReason string `json:"sub_request_error_reason"`
		} `json:"creatives"`
	}
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding update response: %w", err)
	}
	verdict := &port.UpdateVerdict{
		RequestStatus: resp.RequestStatus,
		RawBody:       string(body),
	}
	if len(resp.Creatives) > 0 {
		verdict.ErrorReason = resp.Creatives[0].SubRequestErrorReason
	}
	return verdict, nil
}

// do executes the request and returns the response body. Non-2xx statuses
// (after the transport's retries are exhausted) become errors that include
// the body text, which callers surface in outcome records.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s returned %s | Response: %s",
			req.Method, req.URL.Path, resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
