package analytics

import "time"

// TimeRange bounds an aggregation: [From, To).
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CallsSummary feeds the dashboard's headline chart.
type CallsSummary struct {
	TotalCalls    int `json:"total_calls"`
	SuccessCalls  int `json:"success_calls"`
	FailedCalls   int `json:"failed_calls"`
	NoAnswerCalls int `json:"no_answer_calls"`
	BusyCalls     int `json:"busy_calls"`

	TotalDurationSeconds   int `json:"total_duration_seconds"`
	AverageDurationSeconds int `json:"average_duration_seconds"`

	TotalCost float64 `json:"total_cost"`
}

// ServiceUsage aggregates calls attributed to one catalog service.
type ServiceUsage struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Calls       int     `json:"calls"`
	TotalCost   float64 `json:"total_cost"`
}

// DailyVolume is one bar of the per-day call volume chart.
type DailyVolume struct {
	Date  string  `json:"date"` // YYYY-MM-DD (UTC)
	Calls int     `json:"calls"`
	Cost  float64 `json:"cost"`
}

// ClientStatusDistribution feeds the client status pie chart.
type ClientStatusDistribution struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
	Total    int `json:"total"`
}
