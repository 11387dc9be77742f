package models

// ReminderPayload is queued when a booking is confirmed and delivered shortly
// before the session starts.
type ReminderPayload struct {
	BookingID      string `json:"bookingId"`
	PhotographerID string `json:"photographerId"`
	ClientID       string `json:"clientId"`
	Date           string `json:"date"`
	Start          int    `json:"start"` // minutes from midnight
	ServiceName    string `json:"serviceName"`
}
