package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "shutterbook/database/repository/booking"
	rulesRepo "shutterbook/database/repository/rules"
	"shutterbook/models"
	"shutterbook/services/booking"
	"shutterbook/utils"
)

// BookingHandler exposes the availability, validation, quoting and booking
// endpoints.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// GetAvailability handles GET /api/photographers/:id/availability.
// Query params: from, to (YYYY-MM-DD, default the next 7 days), duration (hours).
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	photographerID := c.Param("id")
	now := time.Now()

	from := c.DefaultQuery("from", now.Format(booking.DateFormat))
	to := c.DefaultQuery("to", now.AddDate(0, 0, 6).Format(booking.DateFormat))
	duration, err := strconv.ParseFloat(c.DefaultQuery("duration", "1"), 64)
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid duration", "duration must be a positive number of hours")
		return
	}

	slots, err := h.Svc.GetAvailability(photographerID, from, to, duration)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photographerId": photographerID,
		"from":           from,
		"to":             to,
		"durationHours":  duration,
		"days":           slots,
	})
}

// ValidateBooking handles POST /api/bookings/validate. A rejection is a
// business outcome, not an error: it comes back 200 with accepted=false.
func (h *BookingHandler) ValidateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	verdict, err := h.Svc.ValidateRequest(req, time.Now())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// QuoteBooking handles POST /api/bookings/quote. On acceptance the itemized
// quote is returned together with a quote id that can be confirmed until it
// expires.
func (h *BookingHandler) QuoteBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	quoteID, quote, verdict, err := h.Svc.QuoteRequest(req, time.Now())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if !verdict.Accepted {
		c.JSON(http.StatusOK, gin.H{"verdict": verdict})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quoteId": quoteID,
		"quote":   quote,
		"verdict": verdict,
	})
}

// ConfirmBooking handles POST /api/bookings. The quoted request is
// re-validated at the write point; a slot taken in the meantime surfaces as a
// rejection verdict, and the client should re-quote.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		QuoteID string `json:"quoteId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booked, verdict, err := h.Svc.ConfirmBooking(input.QuoteID, time.Now())
	if errors.Is(err, booking.ErrQuoteExpired) {
		utils.JSONError(c, http.StatusGone, "quote expired", "request a new quote and try again")
		return
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if !verdict.Accepted {
		c.JSON(http.StatusConflict, gin.H{"verdict": verdict})
		return
	}
	c.JSON(http.StatusCreated, booked)
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status, moving a
// booking forward through its lifecycle.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Status string `json:"status" binding:"required,oneof=confirmed completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booked, err := h.Svc.AdvanceBookingStatus(bookingID, input.Status)
	if errors.Is(err, booking.ErrInvalidTransition) {
		utils.JSONError(c, http.StatusConflict, "invalid status transition", "")
		return
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

// CancelBooking handles POST /api/bookings/:id/cancel, computing the tiered
// refund and recording the cancellation.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		CancelledBy string `json:"cancelledBy" binding:"required,oneof=client photographer"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booked, err := h.Svc.CancelBooking(bookingID, input.CancelledBy, input.Reason, time.Now())
	if errors.Is(err, booking.ErrBookingNotCancellable) {
		utils.JSONError(c, http.StatusConflict, "booking not cancellable", "only pending or confirmed bookings can be cancelled")
		return
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

// respondServiceError maps service failures onto HTTP statuses.
func (h *BookingHandler) respondServiceError(c *gin.Context, err error) {
	var ruleErr *booking.RuleError
	switch {
	case errors.Is(err, rulesRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking rules not found", "the photographer has not configured booking rules")
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
	case errors.As(err, &ruleErr):
		// A stored rules document failing validation means bad data reached
		// the store; surface it loudly rather than pretending the
		// photographer is unavailable.
		h.Logger.Error("stored booking rules failed validation", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "invalid booking rules", ruleErr.Code)
	default:
		h.Logger.Error("booking service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
