package calls

import "time"

// Call is the normalized domain row derived from an accepted call webhook.
//
// Invariants:
// - Outcome is always one of the four enumerated values.
// - DurationSeconds and CostAmount are never negative.
// - Rows are immutable once inserted; there is no update path.
//
// ExternalCallID is the upstream automation system's identifier and is kept
// separate from our own ID (store-assigned, unique, immutable).
type Call struct {
	ID             string `json:"id" db:"id"`
	ExternalCallID string `json:"call_id,omitempty" db:"external_call_id"`

	ClientID   string `json:"client_id,omitempty" db:"client_id"`
	ClientName string `json:"client_name,omitempty" db:"client_name"`

	OccurredAt      time.Time `json:"occurred_at" db:"occurred_at"`
	DurationSeconds int       `json:"duration" db:"duration_seconds"`

	// Direction is a free-form pass-through (e.g. "inbound", "web_call").
	Direction string `json:"direction,omitempty" db:"direction"`

	CostAmount          float64 `json:"cost" db:"cost_amount"`
	DisconnectionReason string  `json:"disconnection_reason,omitempty" db:"disconnection_reason"`

	Outcome       Outcome `json:"result" db:"outcome"`
	UserSentiment string  `json:"user_sentiment,omitempty" db:"user_sentiment"`

	FromNumber string `json:"from_number,omitempty" db:"from_number"`
	ToNumber   string `json:"to_number,omitempty" db:"to_number"`

	WasSuccessful *bool  `json:"call_successful,omitempty" db:"was_successful"`
	Summary       string `json:"call_summary,omitempty" db:"summary"`

	ServiceID   string `json:"service_id,omitempty" db:"service_id"`
	ServiceName string `json:"service_name,omitempty" db:"service_name"`

	RecordingURL string `json:"recording_url,omitempty" db:"recording_url"`
	Transcript   string `json:"transcript,omitempty" db:"transcript"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Outcome is the closed set of call results.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeNoAnswer Outcome = "no_answer"
	OutcomeBusy     Outcome = "busy"
)

// ValidOutcome reports whether s is one of the enumerated outcomes.
func ValidOutcome(s string) bool {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeFailed, OutcomeNoAnswer, OutcomeBusy:
		return true
	default:
		return false
	}
}

// Outcomes lists the accepted values in a stable order, for error messages.
func Outcomes() []string {
	return []string{
		string(OutcomeSuccess),
		string(OutcomeFailed),
		string(OutcomeNoAnswer),
		string(OutcomeBusy),
	}
}
