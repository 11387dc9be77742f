package models

// BookingRequest holds a client's requested session details, as submitted to
// the validate/quote/confirm endpoints.
type BookingRequest struct {
	PhotographerID string   `json:"photographerId" binding:"required"`
	ClientID       string   `json:"clientId"`
	ServiceName    string   `json:"serviceName"`             // named service; empty when booking by duration
	DurationHours  float64  `json:"durationHours,omitempty"` // used when no service name is given
	Date           string   `json:"date" binding:"required"` // "2006-01-02", photographer-local
	Start          int      `json:"start"`                   // requested start, minutes from midnight
	ClientCount    int      `json:"clientCount"`
	DistanceKm     float64  `json:"distanceKm"`
	Addons         []string `json:"addons,omitempty"`        // addon names from the resolved service's list
	PaymentMethod  string   `json:"paymentMethod,omitempty"` // optional; must be enabled in the rule set when given
	SpecialRequest string   `json:"specialRequest,omitempty"`
}
