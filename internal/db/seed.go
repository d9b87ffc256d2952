package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo outcome rows so the admin endpoints have data to serve
// during local development. It is never called in production.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	headlines := []string{
		"Shop The Summer Drop",
		"Free Shipping This Week",
		"New Colors Just Landed",
		"Limited Time Offer",
		"Your Next Favorite Thing",
	}

	for i := 0; i < 3; i++ {
		creativeID := uuid.NewString()
		prior := "Old Headline"
		for j := 0; j < 4; j++ {
			headline := headlines[r.Intn(len(headlines))]
			status := "SUCCESS"
			var errMsg *string
			if r.Intn(5) == 0 {
				status = "FAILED"
				msg := "sub_request_error_reason: creative is locked"
				errMsg = &msg
			}
			createdAt := time.Now().UTC().Add(-time.Duration(4-j) * time.Hour)
			_, err := db.Exec(ctx, `INSERT INTO outcomes
(creative_id, prior_headline, new_headline, status, error_message, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
				creativeID, prior, headline, status, errMsg, createdAt)
			if err != nil {
				return fmt.Errorf("seeding outcome for %s: %w", creativeID, err)
			}
			prior = headline
		}
	}
	return nil
}
