package booking

import "fmt"

// Rule-data error codes, raised when a BookingRules document fails
// construction-time validation. These are fatal: callers must not proceed
// with a malformed rule set.
const (
	RuleErrInvalidInterval  = "invalid_interval"
	RuleErrNonMonotonicTier = "non_monotonic_tiers"
	RuleErrNegativePrice    = "negative_price"
)

// RuleError describes an invalid BookingRules document.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newRuleError(code, format string, args ...interface{}) error {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// RejectReason classifies why a booking request was turned down. Rejections
// are ordinary business outcomes returned as values, never system errors.
type RejectReason string

const (
	ReasonUnknownService           RejectReason = "unknown_service"
	ReasonInsufficientNotice       RejectReason = "insufficient_notice"
	ReasonTooFarInAdvance          RejectReason = "too_far_in_advance"
	ReasonDateUnavailable          RejectReason = "date_unavailable"
	ReasonSlotConflict             RejectReason = "slot_conflict"
	ReasonDailyLimitReached        RejectReason = "daily_limit_reached"
	ReasonGroupSizeExceeded        RejectReason = "group_size_exceeded"
	ReasonDistanceExceeded         RejectReason = "distance_exceeded"
	ReasonPaymentMethodUnavailable RejectReason = "payment_method_unavailable"
)

// Verdict is the outcome of validating a booking request. On acceptance it
// carries the resolved service so the pricing engine can run without
// re-resolving.
type Verdict struct {
	Accepted bool             `json:"accepted"`
	Reason   RejectReason     `json:"reason,omitempty"`
	Detail   string           `json:"detail,omitempty"`
	Resolved *ResolvedService `json:"resolved,omitempty"`
}

// ResolvedService is the service (or bare session duration) a request was
// matched against.
type ResolvedService struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	BasePrice       float64 `json:"basePrice"`
	MaxClients      int     `json:"maxClients"` // 0 when resolved from a bare session duration
	addonPrices     map[string]float64
}

func accept(resolved *ResolvedService) Verdict {
	return Verdict{Accepted: true, Resolved: resolved}
}

func reject(reason RejectReason, format string, args ...interface{}) Verdict {
	return Verdict{Accepted: false, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
