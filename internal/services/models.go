package services

import "time"

// Service is a catalog entry clients contract and calls reference by id.
//
// Prices are decimal amounts in the dashboard currency, matching the call
// rows' cost field. Estimation is display-only: the ingestion pipeline never
// derives a call's cost from the catalog.
type Service struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	PricePerMinute float64 `json:"price_per_minute" db:"price_per_minute"`
	PricePerCall   float64 `json:"price_per_call" db:"price_per_call"`

	Active bool `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CostEstimate is the computed charge preview for a hypothetical call.
type CostEstimate struct {
	ServiceID       string  `json:"service_id"`
	DurationSeconds int     `json:"duration_seconds"`
	BillableMinutes int     `json:"billable_minutes"`
	PricePerMinute  float64 `json:"price_per_minute"`
	PricePerCall    float64 `json:"price_per_call"`
	Total           float64 `json:"total"`
}
