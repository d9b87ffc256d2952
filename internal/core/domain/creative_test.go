package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsFillsOptionalFields(t *testing.T) {
	cr := Creative{ID: "0123456789abcdef"}
	cr.ApplyDefaults(CreativeDefaults{})

	assert.Equal(t, "Creative_01234567", cr.Name)
	assert.Equal(t, "LEARN_MORE", cr.CallToAction)
	assert.Equal(t, "MIDDLE", cr.TopSnapCropPosition)
	assert.Equal(t, "WEB_VIEW", cr.Type)
	assert.Equal(t, "SNAP_AD", cr.AdProduct)
}

func TestApplyDefaultsNeverOverwrites(t *testing.T) {
	cr := Creative{
		ID:           "c1",
		Name:         "Summer Sale",
		CallToAction: "SHOP_NOW",
		WebViewURL:   "https://example.com",
	}
	cr.ApplyDefaults(CreativeDefaults{WebViewURL: "https://fallback.example.com"})

	assert.Equal(t, "Summer Sale", cr.Name)
	assert.Equal(t, "SHOP_NOW", cr.CallToAction)
	assert.Equal(t, "https://example.com", cr.WebViewURL)
}

func TestApplyDefaultsMandatoryTrioFromConfig(t *testing.T) {
	cr := Creative{ID: "c1"}
	cr.ApplyDefaults(CreativeDefaults{
		TopSnapMediaID: "m-default",
		WebViewURL:     "https://fallback.example.com",
		ProfileID:      "p-default",
	})

	assert.Empty(t, cr.MissingFields())
}

func TestMissingFieldsNamesEveryGap(t *testing.T) {
	cr := Creative{ID: "c1", TopSnapMediaID: "m1"}
	assert.Equal(t, []string{"web_view_url", "profile_id"}, cr.MissingFields())

	cr = Creative{ID: "c1"}
	assert.Equal(t, []string{"top_snap_media_id", "web_view_url", "profile_id"}, cr.MissingFields())
}

func TestRotationEligible(t *testing.T) {
	cases := []struct {
		name string
		ad   Ad
		want bool
	}{
		{"active rejected", Ad{CreativeID: "c", Status: AdStatusActive, ReviewStatus: ReviewStatusRejected}, true},
		{"active approved", Ad{CreativeID: "c", Status: AdStatusActive, ReviewStatus: ReviewStatusApproved}, false},
		{"paused rejected", Ad{CreativeID: "c", Status: AdStatusPaused, ReviewStatus: ReviewStatusRejected}, false},
		{"no creative", Ad{Status: AdStatusActive, ReviewStatus: ReviewStatusRejected}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ad.RotationEligible())
		})
	}
}
