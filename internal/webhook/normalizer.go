package webhook

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

// UnknownClientName is substituted when a call references a client id that
// cannot be resolved. Name resolution never fails a normalization.
const UnknownClientName = "unknown client"

// ClientLookup resolves a client for display-name enrichment. Usually the
// clients repository, optionally wrapped by the redis read-through cache.
type ClientLookup interface {
	GetByID(ctx context.Context, id string) (clients.Client, error)
}

// callData mirrors the accepted call payload fields. Duration and cost are
// kept loosely typed: the endpoint validator requires JSON numbers, but
// records written by older pipeline variants may carry numeric strings, and
// reprocessing must coerce rather than fail.
type callData struct {
	CallID              string          `json:"call_id"`
	ClientID            string          `json:"client_id"`
	ClientName          string          `json:"client_name"`
	Time                string          `json:"time"`
	Duration            json.RawMessage `json:"duration"`
	Type                string          `json:"type"`
	Cost                json.RawMessage `json:"cost"`
	DisconnectionReason string          `json:"disconnection_reason"`
	Result              string          `json:"result"`
	UserSentiment       string          `json:"user_sentiment"`
	FromNumber          string          `json:"from_number"`
	ToNumber            string          `json:"to_number"`
	CallSuccessful      *bool           `json:"call_successful"`
	CallSummary         string          `json:"call_summary"`
	ServiceID           string          `json:"service_id"`
	ServiceName         string          `json:"service_name"`
	Recording           string          `json:"recording"`
	Transcription       string          `json:"transcription"`
}

// NormalizeCall maps raw call data to a domain row. Pure construction plus
// a read-only client lookup; it writes nothing.
//
// Missing or invalid result is a hard failure here, never a silent
// "success" default: defaulting would mask upstream integration bugs.
func NormalizeCall(ctx context.Context, raw json.RawMessage, lookup ClientLookup) (calls.Call, error) {
	var d callData
	if err := json.Unmarshal(raw, &d); err != nil {
		return calls.Call{}, fmt.Errorf("%w: %v", ErrNormalization, err)
	}

	occurredAt, err := parseTimestamp(d.Time)
	if err != nil {
		return calls.Call{}, fmt.Errorf("%w: unparseable time %q", ErrNormalization, d.Time)
	}
	if !calls.ValidOutcome(d.Result) {
		return calls.Call{}, fmt.Errorf("%w: invalid result %q", ErrNormalization, d.Result)
	}

	c := calls.Call{
		ExternalCallID:      d.CallID,
		ClientID:            d.ClientID,
		ClientName:          d.ClientName,
		OccurredAt:          occurredAt,
		DurationSeconds:     coerceInt(d.Duration),
		Direction:           d.Type,
		CostAmount:          coerceFloat(d.Cost),
		DisconnectionReason: d.DisconnectionReason,
		Outcome:             calls.Outcome(d.Result),
		UserSentiment:       d.UserSentiment,
		FromNumber:          d.FromNumber,
		ToNumber:            d.ToNumber,
		WasSuccessful:       d.CallSuccessful,
		Summary:             d.CallSummary,
		ServiceID:           d.ServiceID,
		ServiceName:         d.ServiceName,
		RecordingURL:        d.Recording,
		Transcript:          d.Transcription,
	}

	if c.ClientName == "" && c.ClientID != "" {
		if lookup != nil {
			if client, err := lookup.GetByID(ctx, c.ClientID); err == nil {
				c.ClientName = client.Name
			} else {
				c.ClientName = UnknownClientName
			}
		} else {
			c.ClientName = UnknownClientName
		}
	}

	return c, nil
}

type clientData struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Company  string   `json:"company"`
	Status   string   `json:"status"`
	Services []string `json:"services"`
}

// NormalizeClient maps raw client data to the clients-service create input.
// Field validation is the clients service's job (the known per-kind
// validation asymmetry).
func NormalizeClient(raw json.RawMessage) (clients.CreateInput, error) {
	var d clientData
	if err := json.Unmarshal(raw, &d); err != nil {
		return clients.CreateInput{}, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	return clients.CreateInput{
		Name:       d.Name,
		Phone:      d.Phone,
		Email:      d.Email,
		Company:    d.Company,
		Status:     d.Status,
		ServiceIDs: d.Services,
	}, nil
}

// coerceFloat accepts a JSON number or a numeric string. Anything else,
// including negatives, NaN and infinities, coerces to 0.
func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceInt(raw json.RawMessage) int {
	f := coerceFloat(raw)
	// Conversion of an out-of-range float64 to int is implementation-defined
	// and can go negative; values beyond the int range coerce to 0 like any
	// other invalid input.
	if f >= math.MaxInt64 {
		return 0
	}
	return int(f)
}
