package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteConfig controls the embedded database connection.
type SQLiteConfig struct {
	Path        string
	PingTimeout time.Duration
}

func (c SQLiteConfig) withDefaults() SQLiteConfig {
	out := c
	if out.PingTimeout <= 0 {
		out.PingTimeout = 5 * time.Second
	}
	return out
}

// OpenSQLite opens an embedded database using database/sql.
// driverName should typically be "sqlite" (modernc, cgo-free).
//
// The pool is capped at a single connection: the embedded driver serializes
// writers anyway, and a single connection keeps in-memory databases coherent.
func OpenSQLite(ctx context.Context, driverName string, cfg SQLiteConfig) (*sql.DB, error) {
	cfg = cfg.withDefaults()
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := HealthCheck(ctx, db, cfg.PingTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
