package snapchat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-rotator/internal/config/configs"
	"ad-rotator/internal/core/domain"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	cfg := configs.Snapchat{
		APIBaseURL:      *u,
		AccountsBaseURL: *u,
		ClientID:        "cid",
		ClientSecret:    "secret",
		RefreshToken:    "refresh",
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login/oauth2/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cid", r.PostForm.Get("client_id"))
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh", r.PostForm.Get("refresh_token"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))
	defer srv.Close()

	tok, err := testClient(t, srv.URL).AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestAccessTokenMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestListActiveAds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/adaccounts/acct-1/ads", r.URL.Path)
		assert.Equal(t, "ACTIVE", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ads":[
            {"ad":{"id":"a1","creative_id":"c1","status":"ACTIVE","review_status":"REJECTED"}},
            {"ad":{"id":"a2","creative_id":"c2","status":"ACTIVE","review_status":"APPROVED"}}
        ]}`))
	}))
	defer srv.Close()

	ads, err := testClient(t, srv.URL).ListActiveAds(context.Background(), "tok", "acct-1")
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, domain.Ad{
		ID: "a1", CreativeID: "c1",
		Status: domain.AdStatusActive, ReviewStatus: domain.ReviewStatusRejected,
	}, ads[0])
	assert.True(t, ads[0].RotationEligible())
	assert.False(t, ads[1].RotationEligible())
}

func TestGetCreativeFlattensNestedProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/creatives/c1", r.URL.Path)
		_, _ = w.Write([]byte(`{"creatives":[{"creative":{
            "id":"c1","name":"Summer","headline":"Old",
            "top_snap_media_id":"m1",
            "web_view_properties":{"url":"https://example.com","block_preload":false},
            "profile_properties":{"profile_id":"p1"}
        }}]}`))
	}))
	defer srv.Close()

	cr, err := testClient(t, srv.URL).GetCreative(context.Background(), "tok", "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cr.WebViewURL)
	assert.Equal(t, "p1", cr.ProfileID)
	assert.False(t, cr.BlockPreload)
	// flags absent from the wire default to true
	assert.True(t, cr.Shareable)
	assert.Empty(t, cr.MissingFields())
}

func TestGetCreativeEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"creatives":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GetCreative(context.Background(), "tok", "c1")
	require.Error(t, err)
}

func TestUpdateCreativeSubmitsFullObject(t *testing.T) {
	var received updateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/adaccounts/acct-1/creatives", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		_, _ = w.Write([]byte(`{"request_status":"SUCCESS","creatives":[{}]}`))
	}))
	defer srv.Close()

	cr := domain.Creative{
		ID:             "c1",
		Name:           "Summer",
		Headline:       "Fresh",
		TopSnapMediaID: "m1",
		WebViewURL:     "https://example.com",
		ProfileID:      "p1",
		CallToAction:   "LEARN_MORE",
		Type:           "WEB_VIEW",
		AdProduct:      "SNAP_AD",
		Shareable:      true,
		BlockPreload:   true,
	}
	verdict, err := testClient(t, srv.URL).UpdateCreative(context.Background(), "tok", "acct-1", cr)
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", verdict.RequestStatus)

	require.Len(t, received.Creatives, 1)
	sent := received.Creatives[0]
	assert.Equal(t, "acct-1", sent.AdAccountID)
	assert.Equal(t, "Fresh", sent.Headline)
	require.NotNil(t, sent.WebViewProperties)
	assert.Equal(t, "https://example.com", sent.WebViewProperties.URL)
	require.NotNil(t, sent.ProfileProperties)
	assert.Equal(t, "p1", sent.ProfileProperties.ProfileID)
}

func TestUpdateCreativeRejectionVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"request_status":"ERROR","creatives":[{"sub_request_error_reason":"headline too long"}]}`))
	}))
	defer srv.Close()

	verdict, err := testClient(t, srv.URL).UpdateCreative(context.Background(), "tok", "acct-1", domain.Creative{ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "ERROR", verdict.RequestStatus)
	assert.Equal(t, "headline too long", verdict.ErrorReason)
	assert.Contains(t, verdict.RawBody, "headline too long")
}

func TestUpdateCreativeHTTPErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"request_status":"ERROR","debug_message":"unauthorized caller"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).UpdateCreative(context.Background(), "tok", "acct-1", domain.Creative{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized caller")
}
