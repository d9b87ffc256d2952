package configs

import (
	"net/url"

	"ad-rotator/internal/core/domain"
)

// Snapchat configures access to the Snapchat Ads API: OAuth client
// credentials, the ad account to sweep and fallback values for mandatory
// creative fields that the account sometimes leaves empty.
type Snapchat struct {
	// APIBaseURL is the Ads API endpoint.
	APIBaseURL url.URL `env:"API_BASE_URL" envDefault:"https://adsapi.snapchat.com"`
	// AccountsBaseURL hosts the OAuth token endpoint.
	AccountsBaseURL url.URL `env:"ACCOUNTS_BASE_URL" envDefault:"https://accounts.snapchat.com"`

	AdAccountID  string `env:"AD_ACCOUNT_ID"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RefreshToken string `env:"REFRESH_TOKEN"`

	// Configuration-provided fallbacks for the mandatory creative fields.
	// A creative still missing one of these after defaulting is skipped.
	MediaIDDefault    string `env:"MEDIA_ID_DEFAULT"`
	WebViewURLDefault string `env:"WEBVIEW_URL_DEFAULT"`
	ProfileIDDefault  string `env:"PROFILE_ID_DEFAULT"`
}

// CreativeDefaults converts the configured fallbacks into the domain type
// consumed by the eligibility filter.
func (c Snapchat) CreativeDefaults() domain.CreativeDefaults {
	return domain.CreativeDefaults{
		TopSnapMediaID: c.MediaIDDefault,
		WebViewURL:     c.WebViewURLDefault,
		ProfileID:      c.ProfileIDDefault,
	}
}
