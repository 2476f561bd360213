package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"callboard/internal/webhook"
)

// WebhookRepo persists audit records in the webhook_records table.
type WebhookRepo struct {
	db *sql.DB
}

func NewWebhookRepo(db *sql.DB) *WebhookRepo { return &WebhookRepo{db: db} }

func (r *WebhookRepo) Insert(ctx context.Context, rec webhook.Record) (webhook.Record, error) {
	const q = `
INSERT INTO webhook_records (id, kind, raw_data, processed, received_at, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID,
		rec.Kind,
		string(rec.RawData),
		rec.Processed,
		encodeTime(rec.ReceivedAt),
		encodeTime(rec.CreatedAt),
	)
	if err != nil {
		return webhook.Record{}, err
	}
	return rec, nil
}

func (r *WebhookRepo) GetByID(ctx context.Context, id string) (webhook.Record, error) {
	const q = `
SELECT id, kind, raw_data, processed, received_at, created_at
FROM webhook_records
WHERE id = ?
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webhook.Record{}, webhook.ErrNotFound
		}
		return webhook.Record{}, err
	}
	return rec, nil
}

func (r *WebhookRepo) MarkProcessed(ctx context.Context, id string) error {
	const q = `UPDATE webhook_records SET processed = 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return webhook.ErrNotFound
	}
	return nil
}

func (r *WebhookRepo) ListPending(ctx context.Context) ([]webhook.Record, error) {
	const q = `
SELECT id, kind, raw_data, processed, received_at, created_at
FROM webhook_records
WHERE processed = 0
ORDER BY created_at
`
	return r.queryRecords(ctx, q)
}

func (r *WebhookRepo) List(ctx context.Context) ([]webhook.Record, error) {
	const q = `
SELECT id, kind, raw_data, processed, received_at, created_at
FROM webhook_records
ORDER BY created_at
`
	return r.queryRecords(ctx, q)
}

func (r *WebhookRepo) queryRecords(ctx context.Context, q string, args ...any) ([]webhook.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]webhook.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (webhook.Record, error) {
	var rec webhook.Record
	var raw, receivedAt, createdAt string
	if err := s.Scan(
		&rec.ID,
		&rec.Kind,
		&raw,
		&rec.Processed,
		&receivedAt,
		&createdAt,
	); err != nil {
		return webhook.Record{}, err
	}
	rec.RawData = []byte(raw)
	var err error
	if rec.ReceivedAt, err = decodeTime(receivedAt); err != nil {
		return webhook.Record{}, err
	}
	if rec.CreatedAt, err = decodeTime(createdAt); err != nil {
		return webhook.Record{}, err
	}
	return rec, nil
}
