package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"callboard/internal/calls"
)

// CallRepo persists normalized call rows.
type CallRepo struct {
	db *sql.DB
}

func NewCallRepo(db *sql.DB) *CallRepo { return &CallRepo{db: db} }

const callColumns = `
id, external_call_id, client_id, client_name, occurred_at, duration_seconds,
direction, cost_amount, disconnection_reason, outcome, user_sentiment,
from_number, to_number, was_successful, summary, service_id, service_name,
recording_url, transcript, created_at`

func (r *CallRepo) Insert(ctx context.Context, c calls.Call) (calls.Call, error) {
	const q = `
INSERT INTO calls (` + callColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
`
	var wasSuccessful sql.NullBool
	if c.WasSuccessful != nil {
		wasSuccessful = sql.NullBool{Bool: *c.WasSuccessful, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q,
		c.ID,
		c.ExternalCallID,
		c.ClientID,
		c.ClientName,
		c.OccurredAt,
		c.DurationSeconds,
		c.Direction,
		c.CostAmount,
		c.DisconnectionReason,
		c.Outcome,
		c.UserSentiment,
		c.FromNumber,
		c.ToNumber,
		wasSuccessful,
		c.Summary,
		c.ServiceID,
		c.ServiceName,
		c.RecordingURL,
		c.Transcript,
		c.CreatedAt,
	)
	if err != nil {
		return calls.Call{}, err
	}
	return c, nil
}

func (r *CallRepo) GetByID(ctx context.Context, id string) (calls.Call, error) {
	const q = `
SELECT ` + callColumns + `
FROM calls
WHERE id = $1
`
	c, err := scanCall(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calls.Call{}, calls.ErrNotFound
		}
		return calls.Call{}, err
	}
	return c, nil
}

func (r *CallRepo) List(ctx context.Context, f calls.ListFilter) ([]calls.Call, error) {
	q := `
SELECT ` + callColumns + `
FROM calls
WHERE ($1 = '' OR client_id = $1)
  AND ($2 = '' OR service_id = $2)
  AND ($3 = '' OR outcome = $3)
  AND ($4::timestamptz IS NULL OR occurred_at >= $4)
  AND ($5::timestamptz IS NULL OR occurred_at < $5)
ORDER BY occurred_at DESC
`
	rows, err := r.db.QueryContext(ctx, q,
		f.ClientID,
		f.ServiceID,
		string(f.Outcome),
		nullableTime(f.From),
		nullableTime(f.To),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]calls.Call, 0)
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCall(s rowScanner) (calls.Call, error) {
	var c calls.Call
	var wasSuccessful sql.NullBool
	if err := s.Scan(
		&c.ID,
		&c.ExternalCallID,
		&c.ClientID,
		&c.ClientName,
		&c.OccurredAt,
		&c.DurationSeconds,
		&c.Direction,
		&c.CostAmount,
		&c.DisconnectionReason,
		&c.Outcome,
		&c.UserSentiment,
		&c.FromNumber,
		&c.ToNumber,
		&wasSuccessful,
		&c.Summary,
		&c.ServiceID,
		&c.ServiceName,
		&c.RecordingURL,
		&c.Transcript,
		&c.CreatedAt,
	); err != nil {
		return calls.Call{}, err
	}
	if wasSuccessful.Valid {
		v := wasSuccessful.Bool
		c.WasSuccessful = &v
	}
	return c, nil
}

func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
