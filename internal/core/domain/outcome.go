package domain

import "time"

// OutcomeStatus is the result tag of one headline-update attempt.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "SUCCESS"
	OutcomeFailed  OutcomeStatus = "FAILED"
)

// Outcome records one headline-update attempt for one creative. Rows are
// immutable once written; the ordered history per creative is the ledger
// the selector consults to avoid repeating a headline.
type Outcome struct {
	ID            int64
	CreativeID    string
	PriorHeadline string
	NewHeadline   string
	Status        OutcomeStatus
	ErrorMessage  string
	CreatedAt     time.Time
}
