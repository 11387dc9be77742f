package models

import "time"

// Booking statuses. Only pending and confirmed bookings occupy time on the
// photographer's calendar.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a photography session booking record.
type Booking struct {
	ID             string        `bson:"id" json:"id"`                          // Unique booking identifier (UUID)
	PhotographerID string        `bson:"photographer_id" json:"photographerId"` // Photographer who was booked
	ClientID       string        `bson:"client_id" json:"clientId"`             // Client who made the booking
	Date           string        `bson:"date" json:"date"`                      // Session date in "YYYY-MM-DD" format
	Start          int           `bson:"start" json:"start"`                    // Session start (minutes from midnight, photographer-local)
	End            int           `bson:"end" json:"end"`                        // Session end (minutes from midnight)
	ServiceName    string        `bson:"service_name" json:"serviceName"`       // Resolved service or duration description
	ClientCount    int           `bson:"client_count" json:"clientCount"`       // Number of people in the session
	DistanceKm     float64       `bson:"distance_km" json:"distanceKm"`         // Travel distance to the shoot location
	TotalPrice     float64       `bson:"total_price" json:"totalPrice"`         // Quoted total at booking time
	DepositDue     float64       `bson:"deposit_due,omitempty" json:"depositDue,omitempty"`
	Currency       string        `bson:"currency" json:"currency"`
	Status         string        `bson:"status" json:"status"` // pending, confirmed, completed, cancelled
	PaymentMethod  string        `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	SpecialRequest string        `bson:"special_request,omitempty" json:"specialRequest,omitempty"`
	Cancellation   *Cancellation `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Cancellation records why and when a booking was cancelled, together with the
// refund computed from the photographer's cancellation policy.
type Cancellation struct {
	Reason        string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CancelledBy   string    `bson:"cancelled_by" json:"cancelledBy"` // "client" or "photographer"
	CancelledAt   time.Time `bson:"cancelled_at" json:"cancelledAt"`
	RefundPercent float64   `bson:"refund_percent" json:"refundPercent"`
	RefundAmount  float64   `bson:"refund_amount" json:"refundAmount"`
}

// OccupiesCalendar reports whether the booking blocks time on the calendar.
// Cancelled and completed bookings do not.
func (b *Booking) OccupiesCalendar() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanBeCancelled reports whether the booking is still cancellable.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
