package domain

// AdStatus is the lifecycle status of an ad as reported by the Ads API.
type AdStatus string

const (
	AdStatusActive AdStatus = "ACTIVE"
	AdStatusPaused AdStatus = "PAUSED"
)

// ReviewStatus is the outcome of the platform review process for an ad.
type ReviewStatus string

const (
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
	ReviewStatusPending  ReviewStatus = "PENDING"
)

// Ad is a read-only snapshot of one ad entry fetched each cycle. It is
// never persisted; only the outcome of acting on its creative is.
type Ad struct {
	ID           string
	CreativeID   string
	Status       AdStatus
	ReviewStatus ReviewStatus
}

// RotationEligible reports whether the ad is in the state that triggers a
// headline rotation: delivering (ACTIVE) yet rejected by review, with a
// resolvable creative.
func (a Ad) RotationEligible() bool {
	return a.CreativeID != "" && a.Status == AdStatusActive && a.ReviewStatus == ReviewStatusRejected
}
