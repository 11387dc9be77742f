package models

// Slot is one candidate bookable opening produced by the availability engine.
// Slots are computed on demand and never persisted.
type Slot struct {
	Date            string  `json:"date"`  // "2006-01-02"
	Start           int     `json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End             int     `json:"end"`   // minutes from midnight
	ServiceName     string  `json:"serviceName,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	BasePrice       float64 `json:"basePrice,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}
