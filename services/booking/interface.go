package booking

import (
	"time"

	"shutterbook/models"
)

// BookingService is the booking API surface consumed by the HTTP handlers.
type BookingService interface {
	GetAvailability(photographerID, fromDate, toDate string, durationHours float64) (map[string][]models.Slot, error)
	ValidateRequest(req models.BookingRequest, now time.Time) (Verdict, error)
	QuoteRequest(req models.BookingRequest, now time.Time) (string, *models.Quote, Verdict, error)
	ConfirmBooking(quoteID string, now time.Time) (*models.Booking, Verdict, error)
	AdvanceBookingStatus(bookingID, status string) (*models.Booking, error)
	CancelBooking(bookingID, cancelledBy, reason string, now time.Time) (*models.Booking, error)

	GetRules(photographerID string) (*models.BookingRules, error)
	UpsertRules(rules *models.BookingRules) error
	DeleteRules(photographerID string) error
}
