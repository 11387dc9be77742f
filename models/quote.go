package models

// Quote is the itemized price breakdown for an accepted booking request.
// Intermediate terms carry full float precision; only Total and the deposit
// are rounded to two decimals.
type Quote struct {
	ServiceName     string      `json:"serviceName"`
	DurationMinutes int         `json:"durationMinutes"`
	BasePrice       float64     `json:"basePrice"`
	AddonTotal      float64     `json:"addonTotal"`
	TravelFee       float64     `json:"travelFee"`
	SpecialDay      *SpecialDay `json:"specialDay,omitempty"`
	GroupSurcharge  float64     `json:"groupSurcharge"`
	ProcessingFee   float64     `json:"processingFee,omitempty"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	Deposit         *DepositDue `json:"deposit,omitempty"`
}

// SpecialDay describes the special-day pricing adjustment applied to a quote.
type SpecialDay struct {
	DayType       string  `json:"dayType"` // "weekend", "holiday" or "seasonal"
	Multiplier    float64 `json:"multiplier"`
	AdditionalFee float64 `json:"additionalFee,omitempty"`
	Adjustment    float64 `json:"adjustment"` // (base + addons) * (multiplier - 1) + additionalFee
}

// DepositDue is the deposit portion of a quote.
type DepositDue struct {
	Kind   string  `json:"type"` // "fixed" or "percentage"
	Value  float64 `json:"value"`
	Amount float64 `json:"amount"` // resolved amount, rounded to two decimals
}

// RefundQuote is the outcome of a cancellation refund calculation. The
// currency is the booking's own; it travels on the booking record.
type RefundQuote struct {
	RefundPercent float64 `json:"refundPercent"`
	RefundAmount  float64 `json:"refundAmount"`
}
