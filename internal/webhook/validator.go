package webhook

import (
	"time"

	"github.com/goccy/go-json"

	"callboard/internal/calls"
)

// Validate checks a raw inbound body against the per-kind required-field
// contract. Pure function; runs before any durable write so a rejected
// payload never leaves an orphaned audit record.
//
// call: requires time (RFC3339 string), duration (number), cost (number),
// result (one of the call outcomes).
//
// client: only the structural presence of data is required here. Field
// validation for clients lives in the clients service, which the processing
// step delegates to.
func Validate(body []byte) (Kind, json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", nil, ErrMalformedPayload
	}
	if env.Type == nil || *env.Type == "" || len(env.Data) == 0 || string(env.Data) == "null" {
		return "", nil, ErrMalformedPayload
	}

	switch Kind(*env.Type) {
	case KindCall:
		if err := validateCallData(env.Data); err != nil {
			return "", nil, err
		}
		return KindCall, env.Data, nil
	case KindClient:
		return KindClient, env.Data, nil
	default:
		return "", nil, &UnsupportedKindError{Kind: *env.Type}
	}
}

func validateCallData(data json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ErrMalformedPayload
	}

	var missing []string

	if ts, ok := asString(fields["time"]); !ok || !parseableTime(ts) {
		missing = append(missing, "time")
	}
	if _, ok := asNumber(fields["duration"]); !ok {
		missing = append(missing, "duration")
	}
	if _, ok := asNumber(fields["cost"]); !ok {
		missing = append(missing, "cost")
	}

	result, hasResult := asString(fields["result"])
	if !hasResult || result == "" {
		missing = append(missing, "result")
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if !calls.ValidOutcome(result) {
		return &InvalidEnumError{Field: "result", Value: result}
	}
	return nil
}

func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func asNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func parseableTime(s string) bool {
	_, err := parseTimestamp(s)
	return err == nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
