package webhook

import (
	"time"

	"github.com/goccy/go-json"
)

// Kind tags an inbound payload with the domain entity it carries.
type Kind string

const (
	KindCall   Kind = "call"
	KindClient Kind = "client"
)

// Record is the raw, audited copy of an inbound payload.
//
// Invariants:
// - RawData is stored exactly as received; it is the audit trail.
// - Processed starts false and flips to true only after the derived domain
//   row was persisted. That flip is the only mutation; records are never
//   deleted by the pipeline.
type Record struct {
	ID         string          `json:"id" db:"id"`
	Kind       Kind            `json:"type" db:"kind"`
	RawData    json.RawMessage `json:"data" db:"raw_data"`
	Processed  bool            `json:"processed" db:"processed"`
	ReceivedAt time.Time       `json:"timestamp" db:"received_at"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// envelope is the inbound wire shape: {"type": "...", "data": {...}}.
type envelope struct {
	Type *string         `json:"type"`
	Data json.RawMessage `json:"data"`
}
