package sqlite

import (
	"context"
	"database/sql"
	"errors"

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
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
		encodeTime(c.OccurredAt),
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
		encodeTime(c.CreatedAt),
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
WHERE id = ?
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
WHERE (? = '' OR client_id = ?)
  AND (? = '' OR service_id = ?)
  AND (? = '' OR outcome = ?)
  AND (? = '' OR occurred_at >= ?)
  AND (? = '' OR occurred_at < ?)
ORDER BY occurred_at DESC
`
	var from, to string
	if !f.From.IsZero() {
		from = encodeTime(f.From)
	}
	if !f.To.IsZero() {
		to = encodeTime(f.To)
	}
	rows, err := r.db.QueryContext(ctx, q,
		f.ClientID, f.ClientID,
		f.ServiceID, f.ServiceID,
		string(f.Outcome), string(f.Outcome),
		from, from,
		to, to,
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
	var occurredAt, createdAt string
	var wasSuccessful sql.NullBool
	if err := s.Scan(
		&c.ID,
		&c.ExternalCallID,
		&c.ClientID,
		&c.ClientName,
		&occurredAt,
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
		&createdAt,
	); err != nil {
		return calls.Call{}, err
	}
	if wasSuccessful.Valid {
		v := wasSuccessful.Bool
		c.WasSuccessful = &v
	}
	var err error
	if c.OccurredAt, err = decodeTime(occurredAt); err != nil {
		return calls.Call{}, err
	}
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return calls.Call{}, err
	}
	return c, nil
}
