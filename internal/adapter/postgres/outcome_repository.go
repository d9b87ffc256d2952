package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ad-rotator/internal/core/domain"
	"ad-rotator/internal/core/port"
)

// undefinedTable is the PostgreSQL error code returned when the outcomes
// relation does not exist, the "not a valid store" condition EnsureSchema
// recovers from.
const undefinedTable = "42P01"

// pgx uses the extended protocol, which allows one statement per Exec.
var createOutcomesSchema = []string{
	`CREATE TABLE IF NOT EXISTS outcomes (
    id             BIGSERIAL PRIMARY KEY,
    creative_id    TEXT        NOT NULL,
    prior_headline TEXT        NOT NULL DEFAULT '',
    new_headline   TEXT        NOT NULL DEFAULT '',
    status         TEXT        NOT NULL CHECK (status IN ('SUCCESS', 'FAILED')),
    error_message  TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outcomes_creative_id ON outcomes (creative_id)`,
}

// OutcomeRepository implements port.OutcomeRepository on PostgreSQL using
// pgxpool. The outcomes table is append-only; nothing here updates or
// deletes rows.
type OutcomeRepository struct {
	pool *pgxpool.Pool
}

// NewOutcomeRepository returns a new repository instance.
func NewOutcomeRepository(pool *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{pool: pool}
}

// EnsureSchema verifies the outcomes table is usable and recreates it when
// the database reports it missing. It returns true when recovery ran so the
// caller can surface that the ledger history was reset. Calling it twice in
// succession neither duplicates the schema nor touches existing rows.
func (r *OutcomeRepository) EnsureSchema(ctx context.Context) (recreated bool, err error) {
	var one int
	err = r.pool.QueryRow(ctx, `SELECT 1 FROM outcomes LIMIT 1`).Scan(&one)
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != undefinedTable {
		return false, fmt.Errorf("probing outcomes table: %w", err)
	}
	for _, stmt := range createOutcomesSchema {
		if _, err = r.pool.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("recreating outcomes table: %w", err)
		}
	}
	return true, nil
}

// Append persists one outcome row. An empty error message is stored as NULL.
func (r *OutcomeRepository) Append(ctx context.Context, out domain.Outcome) error {
	createdAt := out.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO outcomes
(creative_id, prior_headline, new_headline, status, error_message, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		out.CreativeID, out.PriorHeadline, out.NewHeadline, string(out.Status), out.ErrorMessage, createdAt)
	if err != nil {
		return fmt.Errorf("appending outcome for creative %s: %w", out.CreativeID, err)
	}
	return nil
}

// UsedHeadlines returns every new_headline ever recorded for the creative,
// regardless of whether the attempt succeeded.
func (r *OutcomeRepository) UsedHeadlines(ctx context.Context, creativeID string) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT new_headline FROM outcomes WHERE creative_id = $1`, creativeID)
	if err != nil {
		return nil, err
	}
	headlines, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	used := make(map[string]struct{}, len(headlines))
	for _, h := range headlines {
		used[h] = struct{}{}
	}
	return used, nil
}

// Recent returns the newest outcomes, optionally scoped to one creative.
func (r *OutcomeRepository) Recent(ctx context.Context, creativeID string, limit int) ([]domain.Outcome, error) {
	args := []interface{}{limit}
	whereCreative := ""
	if creativeID != "" {
		whereCreative = "WHERE creative_id = $2"
		args = append(args, creativeID)
	}
	query := fmt.Sprintf(`SELECT id, creative_id, prior_headline, new_headline, status, COALESCE(error_message, ''), created_at
FROM outcomes %s ORDER BY created_at DESC, id DESC LIMIT $1`, whereCreative)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Outcome, error) {
		var o domain.Outcome
		err := row.Scan(&o.ID, &o.CreativeID, &o.PriorHeadline, &o.NewHeadline, &o.Status, &o.ErrorMessage, &o.CreatedAt)
		return o, err
	})
}

// Stats aggregates attempt counts by result over the requested period.
func (r *OutcomeRepository) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []interface{}{req.From, req.To}
	whereCreative := ""
	if req.CreativeID != nil {
		whereCreative = "AND creative_id = $3"
		args = append(args, *req.CreativeID)
	}
	query := fmt.Sprintf(`SELECT
    count(*),
    count(*) FILTER (WHERE status = 'SUCCESS'),
    count(*) FILTER (WHERE status = 'FAILED')
FROM outcomes WHERE created_at >= $1 AND created_at <= $2 %s`, whereCreative)

	var resp port.StatsResp
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&resp.Attempts, &resp.Succeeded, &resp.Failed); err != nil {
		return nil, err
	}
	return &resp, nil
}
