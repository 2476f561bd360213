package clients

import "time"

// Client represents a managed dashboard client.
//
// ServiceIDs is a set of contracted service catalog ids. Calls reference
// clients by id only (lookup, no cascading ownership).
type Client struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
	Company string `json:"company" db:"company"`

	Status Status `json:"status" db:"status"`

	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`

	ServiceIDs []string `json:"services" db:"service_ids"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusPending:
		return true
	default:
		return false
	}
}
