package bookingRepo

import "shutterbook/models"

// BookingRepository defines persistence for booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(bookingID string) (*models.Booking, error)
	// ListForPhotographerRange returns all bookings for a photographer whose
	// date lies within [fromDate, toDate], inclusive, any status.
	ListForPhotographerRange(photographerID, fromDate, toDate string) ([]models.Booking, error)
	UpdateStatus(bookingID, status string) error
	Cancel(bookingID string, cancellation *models.Cancellation) error
	EnsureIndexes() error
}
