package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"shutterbook/config"
	bookingRepo "shutterbook/database/repository/booking"
	rulesRepo "shutterbook/database/repository/rules"
	"shutterbook/models"
	"shutterbook/services/tasks"
	"shutterbook/utils"
)

// ErrQuoteExpired is returned when confirming a quote that is no longer cached.
var ErrQuoteExpired = errors.New("quote expired or not found")

// ErrBookingNotCancellable is returned when cancelling a completed or already
// cancelled booking.
var ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")

// ErrInvalidTransition is returned for a status change the booking lifecycle
// does not allow.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// DefaultBookingService wires the pure rules engine to storage, caching and
// the reminder queue. The engine itself performs no I/O: this layer fetches a
// consistent snapshot (rules + bookings), hands it to the engine, and
// persists outcomes.
type DefaultBookingService struct {
	RulesRepo    rulesRepo.BookingRulesRepository
	BookingRepo  bookingRepo.BookingRepository
	CacheClient  *redis.Client
	QuoteCache   *redis.Client
	Reminders    *asynq.Client
	DayTypes     DayTypeResolver
	Availability AvailabilityOptions
	Logger       *zap.Logger
}

// quoteSession is the cached outcome of a quote call, reservable until TTL.
type quoteSession struct {
	Request models.BookingRequest `json:"request"`
	Quote   models.Quote          `json:"quote"`
}

// loadRuleSet fetches, validates and caches the photographer's rule set.
// Rule documents change rarely; a short read-through cache keeps hot
// photographers cheap while the validated RuleSet itself is rebuilt per call.
func (svc *DefaultBookingService) loadRuleSet(photographerID string) (*RuleSet, error) {
	ctx := context.Background()
	cacheKey := utils.RulesCachePrefix + photographerID

	if svc.CacheClient != nil {
		if data, err := svc.CacheClient.Get(ctx, cacheKey).Bytes(); err == nil {
			var doc models.BookingRules
			if err := json.Unmarshal(data, &doc); err == nil {
				return NewRuleSet(&doc)
			}
		}
	}

	doc, err := svc.RulesRepo.GetByPhotographer(photographerID)
	if err != nil {
		return nil, err
	}
	rs, err := NewRuleSet(doc)
	if err != nil {
		return nil, err
	}

	if svc.CacheClient != nil {
		if data, err := json.Marshal(doc); err == nil {
			if err := svc.CacheClient.Set(ctx, cacheKey, data, utils.RulesCacheTTL).Err(); err != nil {
				svc.Logger.Warn("failed to cache booking rules", zap.String("photographerID", photographerID), zap.Error(err))
			}
		}
	}
	return rs, nil
}

// GetAvailability computes the open slots per date for one photographer.
func (svc *DefaultBookingService) GetAvailability(photographerID, fromDate, toDate string, durationHours float64) (map[string][]models.Slot, error) {
	rs, err := svc.loadRuleSet(photographerID)
	if err != nil {
		return nil, err
	}
	bookings, err := svc.BookingRepo.ListForPhotographerRange(photographerID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return ComputeAvailability(rs, bookings, fromDate, toDate, durationHours, svc.Availability)
}

// ValidateRequest runs the booking validator against a fresh snapshot.
func (svc *DefaultBookingService) ValidateRequest(req models.BookingRequest, now time.Time) (Verdict, error) {
	rs, err := svc.loadRuleSet(req.PhotographerID)
	if err != nil {
		return Verdict{}, err
	}
	bookings, err := svc.BookingRepo.ListForPhotographerRange(req.PhotographerID, req.Date, req.Date)
	if err != nil {
		return Verdict{}, err
	}
	return Validate(rs, bookings, req, now), nil
}

// QuoteRequest validates the request and, when accepted, prices it. The
// quote is cached under a fresh id so the client can confirm it later.
func (svc *DefaultBookingService) QuoteRequest(req models.BookingRequest, now time.Time) (string, *models.Quote, Verdict, error) {
	rs, err := svc.loadRuleSet(req.PhotographerID)
	if err != nil {
		return "", nil, Verdict{}, err
	}
	bookings, err := svc.BookingRepo.ListForPhotographerRange(req.PhotographerID, req.Date, req.Date)
	if err != nil {
		return "", nil, Verdict{}, err
	}

	verdict := Validate(rs, bookings, req, now)
	if !verdict.Accepted {
		return "", nil, verdict, nil
	}

	quote := BuildQuote(rs, req, verdict.Resolved, svc.DayTypes)

	quoteID := uuid.New().String()
	session := quoteSession{Request: req, Quote: *quote}
	data, err := json.Marshal(session)
	if err != nil {
		return "", nil, Verdict{}, fmt.Errorf("failed to marshal quote session: %w", err)
	}
	ctx := context.Background()
	if err := svc.QuoteCache.Set(ctx, utils.QuoteCachePrefix+quoteID, data, utils.QuoteCacheTTL).Err(); err != nil {
		return "", nil, Verdict{}, fmt.Errorf("failed to cache quote session: %w", err)
	}

	return quoteID, quote, verdict, nil
}

// ConfirmBooking turns a cached quote into a pending booking. The request is
// re-validated against a fresh snapshot at the write point; the engine only
// ever says a slot appears free, and the storage layer's uniqueness
// constraint has the final word on races.
func (svc *DefaultBookingService) ConfirmBooking(quoteID string, now time.Time) (*models.Booking, Verdict, error) {
	ctx := context.Background()
	data, err := svc.QuoteCache.Get(ctx, utils.QuoteCachePrefix+quoteID).Bytes()
	if err == redis.Nil {
		return nil, Verdict{}, ErrQuoteExpired
	}
	if err != nil {
		return nil, Verdict{}, fmt.Errorf("failed to load quote session: %w", err)
	}
	var session quoteSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, Verdict{}, fmt.Errorf("failed to decode quote session: %w", err)
	}
	req := session.Request

	rs, err := svc.loadRuleSet(req.PhotographerID)
	if err != nil {
		return nil, Verdict{}, err
	}
	bookings, err := svc.BookingRepo.ListForPhotographerRange(req.PhotographerID, req.Date, req.Date)
	if err != nil {
		return nil, Verdict{}, err
	}
	verdict := Validate(rs, bookings, req, now)
	if !verdict.Accepted {
		return nil, verdict, nil
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		PhotographerID: req.PhotographerID,
		ClientID:       req.ClientID,
		Date:           req.Date,
		Start:          req.Start,
		End:            req.Start + verdict.Resolved.DurationMinutes,
		ServiceName:    verdict.Resolved.Name,
		ClientCount:    req.ClientCount,
		DistanceKm:     req.DistanceKm,
		TotalPrice:     session.Quote.Total,
		Currency:       session.Quote.Currency,
		Status:         models.BookingStatusPending,
		PaymentMethod:  req.PaymentMethod,
		SpecialRequest: req.SpecialRequest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if session.Quote.Deposit != nil {
		booking.DepositDue = session.Quote.Deposit.Amount
	}

	if err := svc.BookingRepo.Create(booking); err != nil {
		return nil, Verdict{}, err
	}

	// The quote is spent either way.
	if err := svc.QuoteCache.Del(ctx, utils.QuoteCachePrefix+quoteID).Err(); err != nil {
		svc.Logger.Warn("failed to drop confirmed quote session", zap.String("quoteID", quoteID), zap.Error(err))
	}

	svc.scheduleReminder(booking, now)

	return booking, verdict, nil
}

// scheduleReminder enqueues a session reminder ahead of the start time.
// Reminder failures never fail the booking.
func (svc *DefaultBookingService) scheduleReminder(booking *models.Booking, now time.Time) {
	if svc.Reminders == nil {
		return
	}
	startAt, err := combineDateTime(booking.Date, booking.Start, now.Location())
	if err != nil {
		return
	}
	fireAt := startAt.Add(-time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute)
	if fireAt.Before(now) {
		return
	}

	payload := models.ReminderPayload{
		BookingID:      booking.ID,
		PhotographerID: booking.PhotographerID,
		ClientID:       booking.ClientID,
		Date:           booking.Date,
		Start:          booking.Start,
		ServiceName:    booking.ServiceName,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		svc.Logger.Warn("failed to build reminder task", zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	if _, err := svc.Reminders.Enqueue(task, opts...); err != nil {
		svc.Logger.Warn("failed to enqueue reminder", zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// AdvanceBookingStatus moves a booking forward through its lifecycle: pending
// becomes confirmed once the deposit clears, confirmed becomes completed after
// the session. Cancellation goes through CancelBooking, which also settles the
// refund.
func (svc *DefaultBookingService) AdvanceBookingStatus(bookingID, status string) (*models.Booking, error) {
	booking, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	allowed := (booking.Status == models.BookingStatusPending && status == models.BookingStatusConfirmed) ||
		(booking.Status == models.BookingStatusConfirmed && status == models.BookingStatusCompleted)
	if !allowed {
		return nil, ErrInvalidTransition
	}

	if err := svc.BookingRepo.UpdateStatus(bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return booking, nil
}

// CancelBooking computes the tiered refund for a cancellation and records it
// on the booking.
func (svc *DefaultBookingService) CancelBooking(bookingID, cancelledBy, reason string, now time.Time) (*models.Booking, error) {
	booking, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeCancelled() {
		return nil, ErrBookingNotCancellable
	}

	rs, err := svc.loadRuleSet(booking.PhotographerID)
	if err != nil {
		return nil, err
	}
	startAt, err := combineDateTime(booking.Date, booking.Start, now.Location())
	if err != nil {
		return nil, err
	}

	refund := Refund(rs.CancellationPolicy(), startAt, now, booking.TotalPrice)
	cancellation := &models.Cancellation{
		Reason:        reason,
		CancelledBy:   cancelledBy,
		CancelledAt:   now,
		RefundPercent: refund.RefundPercent,
		RefundAmount:  refund.RefundAmount,
	}
	if err := svc.BookingRepo.Cancel(bookingID, cancellation); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.Cancellation = cancellation
	booking.UpdatedAt = now
	return booking, nil
}

// GetRules returns the stored rules document for a photographer.
func (svc *DefaultBookingService) GetRules(photographerID string) (*models.BookingRules, error) {
	return svc.RulesRepo.GetByPhotographer(photographerID)
}

// UpsertRules validates and stores a photographer's rules document, then
// invalidates the cached copy. Validation happens here, on write, so a rules
// document that reaches the engine is always well-formed.
func (svc *DefaultBookingService) UpsertRules(rules *models.BookingRules) error {
	if _, err := NewRuleSet(rules); err != nil {
		return err
	}
	if err := svc.RulesRepo.Upsert(rules); err != nil {
		return err
	}
	if svc.CacheClient != nil {
		ctx := context.Background()
		if err := svc.CacheClient.Del(ctx, utils.RulesCachePrefix+rules.PhotographerID).Err(); err != nil {
			svc.Logger.Warn("failed to invalidate rules cache", zap.String("photographerID", rules.PhotographerID), zap.Error(err))
		}
	}
	return nil
}

// DeleteRules removes a photographer's rules document and its cached copy.
func (svc *DefaultBookingService) DeleteRules(photographerID string) error {
	if err := svc.RulesRepo.Delete(photographerID); err != nil {
		return err
	}
	if svc.CacheClient != nil {
		ctx := context.Background()
		if err := svc.CacheClient.Del(ctx, utils.RulesCachePrefix+photographerID).Err(); err != nil {
			svc.Logger.Warn("failed to invalidate rules cache", zap.String("photographerID", photographerID), zap.Error(err))
		}
	}
	return nil
}
