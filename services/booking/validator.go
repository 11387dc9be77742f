package booking

import (
	"time"

	"shutterbook/models"
)

// Validate checks a booking request against the photographer's rules and the
// supplied booking snapshot. Checks run in a fixed order and short-circuit at
// the first failure so rejection reasons are deterministic. The wall-clock
// "now" is always supplied by the caller, never read internally.
//
// A verdict is a business outcome, not an error: callers racing on the same
// slot must re-validate at the actual write point inside whatever atomic
// primitive the storage layer offers.
func Validate(rs *RuleSet, bookings []models.Booking, req models.BookingRequest, now time.Time) Verdict {
	resolved := rs.ResolveService(req.ServiceName, req.DurationHours)
	if resolved == nil {
		if req.ServiceName != "" {
			return reject(ReasonUnknownService, "no service named %q", req.ServiceName)
		}
		return reject(ReasonUnknownService, "no session duration of %v hours on offer", req.DurationHours)
	}

	requestedStart, err := combineDateTime(req.Date, req.Start, now.Location())
	if err != nil {
		return reject(ReasonDateUnavailable, "invalid requested date %q", req.Date)
	}

	if requestedStart.Before(now.Add(time.Duration(rs.minNoticeHours) * time.Hour)) {
		return reject(ReasonInsufficientNotice, "bookings need at least %d hours notice", rs.minNoticeHours)
	}

	// The advance window is a day-granular cutoff: the last bookable date is
	// today plus advanceBookingDays, regardless of time of day.
	lastDate := now.AddDate(0, 0, rs.advanceBookingDays).Format(DateFormat)
	if req.Date > lastDate {
		return reject(ReasonTooFarInAdvance, "bookings open at most %d days ahead (until %s)", rs.advanceBookingDays, lastDate)
	}

	if closed, reason := rs.IsDateFullyClosed(req.Date); closed {
		return reject(ReasonDateUnavailable, "%s is unavailable: %s", req.Date, reason)
	}

	requested := Interval{Start: req.Start, End: req.Start + resolved.DurationMinutes}
	if !fitsWorkingHours(rs, req.Date, requested) {
		return reject(ReasonSlotConflict, "%s-%s does not fit within working hours on %s",
			formatClock(requested.Start), formatClock(requested.End), req.Date)
	}

	dayBookings := groupActiveBookingsByDate(bookings)[req.Date]
	for _, b := range dayBookings {
		if addBuffer(Interval{Start: b.Start, End: b.End}, rs.bufferMinutes).Overlaps(requested) {
			return reject(ReasonSlotConflict, "%s-%s conflicts with an existing session",
				formatClock(requested.Start), formatClock(requested.End))
		}
	}

	if len(dayBookings)+1 > rs.maxBookingsPerDay {
		return reject(ReasonDailyLimitReached, "%s already has %d of %d bookings", req.Date, len(dayBookings), rs.maxBookingsPerDay)
	}

	// Exceeding the service's own maxClients alone is not a rejection; the
	// overflow is priced as a group surcharge as long as it stays within the
	// photographer's overall group cap. A maxGroupSize of 0 means no cap.
	if rs.group.MaxGroupSize > 0 && req.ClientCount > rs.group.MaxGroupSize &&
		(resolved.MaxClients == 0 || req.ClientCount > resolved.MaxClients) {
		return reject(ReasonGroupSizeExceeded, "group of %d exceeds the maximum of %d", req.ClientCount, rs.group.MaxGroupSize)
	}

	if req.DistanceKm > rs.travel.MaxDistanceKm {
		return reject(ReasonDistanceExceeded, "%.1fkm exceeds the travel limit of %.1fkm", req.DistanceKm, rs.travel.MaxDistanceKm)
	}

	if req.PaymentMethod != "" {
		if _, ok := rs.PaymentMethodFor(req.PaymentMethod); !ok {
			return reject(ReasonPaymentMethodUnavailable, "payment method %q is not accepted", req.PaymentMethod)
		}
	}

	return accept(resolved)
}

// fitsWorkingHours reports whether the requested interval is fully contained
// within a single working interval for the date. A session cannot span the
// closed gap between two working intervals.
func fitsWorkingHours(rs *RuleSet, date string, requested Interval) bool {
	for _, working := range rs.WorkingIntervalsFor(date) {
		if working.Contains(requested) {
			return true
		}
	}
	return false
}
