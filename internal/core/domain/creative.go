package domain

import "fmt"

// Creative is the full mutable content record behind an ad. The update API
// requires the complete object on every write, so all fields the API knows
// about are carried here, not just the headline.
type Creative struct {
	ID                  string
	Name                string
	Headline            string
	TopSnapMediaID      string
	WebViewURL          string
	ProfileID           string
	CallToAction        string
	TopSnapCropPosition string
	Type                string
	AdProduct           string
	Shareable           bool
	BlockPreload        bool
}

// CreativeDefaults holds configuration-provided fallbacks for the mandatory
// delivery fields. These are the only mandatory values that may be defaulted;
// everything else required by the API has a fixed presentation default.
type CreativeDefaults struct {
	TopSnapMediaID string
	WebViewURL     string
	ProfileID      string
}

// ApplyDefaults fills empty fields in place. Optional presentation fields get
// fixed values matching what the API would otherwise reject; the mandatory
// trio falls back to the configured defaults and nothing else.
func (c *Creative) ApplyDefaults(d CreativeDefaults) {
	if c.TopSnapMediaID == "" {
		c.TopSnapMediaID = d.TopSnapMediaID
	}
	if c.WebViewURL == "" {
		c.WebViewURL = d.WebViewURL
	}
	if c.ProfileID == "" {
		c.ProfileID = d.ProfileID
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Creative_%s", shortID(c.ID))
	}
	if c.CallToAction == "" {
		c.CallToAction = "LEARN_MORE"
	}
	if c.TopSnapCropPosition == "" {
		c.TopSnapCropPosition = "MIDDLE"
	}
	if c.Type == "" {
		c.Type = "WEB_VIEW"
	}
	if c.AdProduct == "" {
		c.AdProduct = "SNAP_AD"
	}
}

// MissingFields returns the API names of mandatory fields that are still
// empty after defaulting. An update must not be submitted while this is
// non-empty.
func (c *Creative) MissingFields() []string {
	var missing []string
	if c.TopSnapMediaID == "" {
		missing = append(missing, "top_snap_media_id")
	}
	if c.WebViewURL == "" {
		missing = append(missing, "web_view_url")
	}
	if c.ProfileID == "" {
		missing = append(missing, "profile_id")
	}
	return missing
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
