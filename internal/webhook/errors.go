package webhook

import (
	"errors"
	"fmt"
	"strings"

	"callboard/internal/calls"
)

var (
	// ErrMalformedPayload: the envelope is missing type or data. Rejected
	// before any durable write.
	ErrMalformedPayload = errors.New("webhook: type and data are required")

	// ErrNotFound: reconciliation was invoked on an unknown record id.
	ErrNotFound = errors.New("webhook: record not found")

	// ErrAlreadyProcessed: the idempotence guard. A processed record is
	// never normalized or persisted a second time.
	ErrAlreadyProcessed = errors.New("webhook: record already processed")

	// ErrNormalization: the stored raw data could not be turned into a
	// domain row. The audit record stays pending for manual retry.
	ErrNormalization = errors.New("webhook: normalization failed")
)

// MissingFieldsError rejects a call payload whose required fields are
// absent or wrongly typed. Raised before any durable write.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InvalidEnumError rejects a value outside a closed enum set.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q, must be one of: %s", e.Field, e.Value, strings.Join(calls.Outcomes(), ", "))
}

// UnsupportedKindError rejects a payload whose type is not a known kind.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return "unsupported webhook type: " + e.Kind
}

// PersistenceError is any failed durable write (audit insert, domain
// insert, or the processed flip). Op names the failed write for the
// HTTP error body.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("webhook: failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
