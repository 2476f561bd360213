package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// Migrate creates the tables the repositories expect. Statements are
// idempotent so startup can run this unconditionally.
//
// Timestamps are stored as RFC 3339 UTC text; the driver has no native
// time type.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS webhook_records (
			id          TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			raw_data    TEXT NOT NULL,
			processed   INTEGER NOT NULL DEFAULT 0,
			received_at TEXT NOT NULL,
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_records_processed
			ON webhook_records (processed, created_at)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			phone             TEXT NOT NULL,
			email             TEXT NOT NULL,
			company           TEXT NOT NULL DEFAULT '',
			status            TEXT NOT NULL,
			registration_date TEXT NOT NULL,
			service_ids       TEXT NOT NULL DEFAULT '[]',
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			price_per_minute REAL NOT NULL DEFAULT 0,
			price_per_call   REAL NOT NULL DEFAULT 0,
			active           INTEGER NOT NULL DEFAULT 1,
			created_at       TEXT NOT NULL,
			updated_at       TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calls (
			id                   TEXT PRIMARY KEY,
			external_call_id     TEXT NOT NULL DEFAULT '',
			client_id            TEXT NOT NULL DEFAULT '',
			client_name          TEXT NOT NULL,
			occurred_at          TEXT NOT NULL,
			duration_seconds     INTEGER NOT NULL DEFAULT 0,
			direction            TEXT NOT NULL DEFAULT '',
			cost_amount          REAL NOT NULL DEFAULT 0,
			disconnection_reason TEXT NOT NULL DEFAULT '',
			outcome              TEXT NOT NULL,
			user_sentiment       TEXT NOT NULL DEFAULT '',
			from_number          TEXT NOT NULL DEFAULT '',
			to_number            TEXT NOT NULL DEFAULT '',
			was_successful       INTEGER,
			summary              TEXT NOT NULL DEFAULT '',
			service_id           TEXT NOT NULL DEFAULT '',
			service_name         TEXT NOT NULL DEFAULT '',
			recording_url        TEXT NOT NULL DEFAULT '',
			transcript           TEXT NOT NULL DEFAULT '',
			created_at           TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_occurred_at ON calls (occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_client_id ON calls (client_id)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// timeLayout keeps a fixed-width fraction so stored text compares
// lexicographically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
