package snapchat

import "ad-rotator/internal/core/domain"

// Wire representations of the Ads API objects. Nested web_view_properties
// and profile_properties are flattened into the domain Creative; boolean
// flags absent from a response default to true, matching API behaviour.

type adPayload struct {
	ID           string `json:"id"`
	CreativeID   string `json:"creative_id"`
	Status       string `json:"status"`
	ReviewStatus string `json:"review_status"`
}

func (p adPayload) toDomain() domain.Ad {
	return domain.Ad{
		ID:           p.ID,
		CreativeID:   p.CreativeID,
		Status:       domain.AdStatus(p.Status),
		ReviewStatus: domain.ReviewStatus(p.ReviewStatus),
	}
}

type webViewProperties struct {
	URL          string `json:"url,omitempty"`
	BlockPreload *bool  `json:"block_preload,omitempty"`
}

type profileProperties struct {
	ProfileID string `json:"profile_id,omitempty"`
}

type creativePayload struct {
	AdAccountID         string             `json:"ad_account_id,omitempty"`
	ID                  string             `json:"id"`
	Name                string             `json:"name,omitempty"`
	Headline            string             `json:"headline,omitempty"`
	TopSnapMediaID      string             `json:"top_snap_media_id,omitempty"`
	TopSnapCropPosition string             `json:"top_snap_crop_position,omitempty"`
	CallToAction        string             `json:"call_to_action,omitempty"`
	Type                string             `json:"type,omitempty"`
	AdProduct           string             `json:"ad_product,omitempty"`
	Shareable           *bool              `json:"shareable,omitempty"`
	WebViewProperties   *webViewProperties `json:"web_view_properties,omitempty"`
	ProfileProperties   *profileProperties `json:"profile_properties,omitempty"`
}

func (p creativePayload) toDomain() domain.Creative {
	cr := domain.Creative{
		ID:                  p.ID,
		Name:                p.Name,
		Headline:            p.Headline,
		TopSnapMediaID:      p.TopSnapMediaID,
		TopSnapCropPosition: p.TopSnapCropPosition,
		CallToAction:        p.CallToAction,
		Type:                p.Type,
		AdProduct:           p.AdProduct,
		Shareable:           true,
		BlockPreload:        true,
	}
	if p.Shareable != nil {
		cr.Shareable = *p.Shareable
	}
	if p.WebViewProperties != nil {
		cr.WebViewURL = p.WebViewProperties.URL
		if p.WebViewProperties.BlockPreload != nil {
			cr.BlockPreload = *p.WebViewProperties.BlockPreload
		}
	}
	if p.ProfileProperties != nil {
		cr.ProfileID = p.ProfileProperties.ProfileID
	}
	return cr
}

func creativeToPayload(accountID string, cr domain.Creative) creativePayload {
	shareable := cr.Shareable
	blockPreload := cr.BlockPreload
	return creativePayload{
		AdAccountID:         accountID,
		ID:                  cr.ID,
		Name:                cr.Name,
		Headline:            cr.Headline,
		TopSnapMediaID:      cr.TopSnapMediaID,
		TopSnapCropPosition: cr.TopSnapCropPosition,
		CallToAction:        cr.CallToAction,
		Type:                cr.Type,
		AdProduct:           cr.AdProduct,
		Shareable:           &shareable,
		WebViewProperties: &webViewProperties{
			URL:          cr.WebViewURL,
			BlockPreload: &blockPreload,
		},
		ProfileProperties: &profileProperties{ProfileID: cr.ProfileID},
	}
}

type updateRequest struct {
	Creatives []creativePayload `json:"creatives"`
}
