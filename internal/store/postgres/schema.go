package postgres

import (
	"context"
	"database/sql"
)

// Migrate creates the tables the repositories expect. Statements are
// idempotent so startup can run this unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS webhook_records (
			id          TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			raw_data    JSONB NOT NULL,
			processed   BOOLEAN NOT NULL DEFAULT FALSE,
			received_at TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_records_pending
			ON webhook_records (created_at) WHERE NOT processed`,
		`CREATE TABLE IF NOT EXISTS clients (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			phone             TEXT NOT NULL,
			email             TEXT NOT NULL,
			company           TEXT NOT NULL DEFAULT '',
			status            TEXT NOT NULL,
			registration_date TIMESTAMPTZ NOT NULL,
			service_ids       JSONB NOT NULL DEFAULT '[]',
			created_at        TIMESTAMPTZ NOT NULL,
			updated_at        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			price_per_minute DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_per_call   DOUBLE PRECISION NOT NULL DEFAULT 0,
			active           BOOLEAN NOT NULL DEFAULT TRUE,
			created_at       TIMESTAMPTZ NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calls (
			id                   TEXT PRIMARY KEY,
			external_call_id     TEXT NOT NULL DEFAULT '',
			client_id            TEXT NOT NULL DEFAULT '',
			client_name          TEXT NOT NULL,
			occurred_at          TIMESTAMPTZ NOT NULL,
			duration_seconds     INTEGER NOT NULL DEFAULT 0,
			direction            TEXT NOT NULL DEFAULT '',
			cost_amount          DOUBLE PRECISION NOT NULL DEFAULT 0,
			disconnection_reason TEXT NOT NULL DEFAULT '',
			outcome              TEXT NOT NULL,
			user_sentiment       TEXT NOT NULL DEFAULT '',
			from_number          TEXT NOT NULL DEFAULT '',
			to_number            TEXT NOT NULL DEFAULT '',
			was_successful       BOOLEAN,
			summary              TEXT NOT NULL DEFAULT '',
			service_id           TEXT NOT NULL DEFAULT '',
			service_name         TEXT NOT NULL DEFAULT '',
			recording_url        TEXT NOT NULL DEFAULT '',
			transcript           TEXT NOT NULL DEFAULT '',
			created_at           TIMESTAMPTZ NOT NULL
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
