package booking

import (
	"math"
	"strings"
	"time"

	"shutterbook/models"
)

// daySchedule is one weekday's validated working hours.
type daySchedule struct {
	available bool
	intervals []Interval // sorted, disjoint
}

// RuleSet is the validated, immutable in-memory form of one photographer's
// BookingRules document. Construction is the single validation choke point:
// a RuleSet that exists is safe to evaluate. It is loaded fresh per call and
// never subscribes to changes; the caller refetches when the rules change.
type RuleSet struct {
	photographerID     string
	currency           string
	advanceBookingDays int
	minNoticeHours     int
	maxBookingsPerDay  int
	bufferMinutes      int
	week               [7]daySchedule    // indexed by time.Weekday
	unavailable        map[string]string // date -> reason
	sessionDurations   []models.SessionDuration
	services           []models.PhotoService
	travel             models.TravelPolicy
	specialRates       []models.SpecialDayRate
	group              models.GroupSizeRules
	depositRequired    bool
	deposit            models.DepositAmount
	cancellation       models.CancellationPolicy
	paymentMethods     map[string]models.PaymentMethod
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// NewRuleSet validates a stored BookingRules document and builds the engine's
// working representation. Any invariant violation fails construction with a
// RuleError; the caller must not proceed with a malformed rule set.
func NewRuleSet(doc *models.BookingRules) (*RuleSet, error) {
	rs := &RuleSet{
		photographerID:     doc.PhotographerID,
		currency:           doc.Currency,
		advanceBookingDays: doc.AdvanceBookingDays,
		minNoticeHours:     doc.MinNoticeHours,
		maxBookingsPerDay:  doc.MaxBookingsPerDay,
		bufferMinutes:      doc.BufferMinutes,
		unavailable:        make(map[string]string, len(doc.UnavailableDates)),
		sessionDurations:   doc.SessionDurations,
		services:           doc.Services,
		travel:             doc.TravelPolicy,
		specialRates:       doc.SpecialDayRates,
		group:              doc.GroupSizeRules,
		depositRequired:    doc.DepositRequired,
		deposit:            doc.DepositAmount,
		cancellation:       doc.CancellationPolicy,
		paymentMethods:     make(map[string]models.PaymentMethod, len(doc.PaymentMethods)),
	}
	if rs.currency == "" {
		rs.currency = "USD"
	}

	if doc.AdvanceBookingDays < 0 {
		return nil, newRuleError(RuleErrInvalidInterval, "advanceBookingDays must be >= 0, got %d", doc.AdvanceBookingDays)
	}
	if doc.MinNoticeHours < 0 {
		return nil, newRuleError(RuleErrInvalidInterval, "minNoticeHours must be >= 0, got %d", doc.MinNoticeHours)
	}
	if doc.MaxBookingsPerDay < 1 {
		return nil, newRuleError(RuleErrInvalidInterval, "maxBookingsPerDay must be >= 1, got %d", doc.MaxBookingsPerDay)
	}
	if doc.BufferMinutes < 0 {
		return nil, newRuleError(RuleErrInvalidInterval, "bufferMinutes must be >= 0, got %d", doc.BufferMinutes)
	}

	if err := rs.buildWeek(doc.WorkingHours); err != nil {
		return nil, err
	}

	for _, ud := range doc.UnavailableDates {
		if _, err := parseDate(ud.Date); err != nil {
			return nil, newRuleError(RuleErrInvalidInterval, "unavailable date %q is not a valid YYYY-MM-DD date", ud.Date)
		}
		rs.unavailable[ud.Date] = ud.Reason
	}

	for _, sd := range doc.SessionDurations {
		if sd.DurationHours <= 0 {
			return nil, newRuleError(RuleErrInvalidInterval, "session duration %q must be positive, got %v hours", sd.Description, sd.DurationHours)
		}
		if sd.Price < 0 {
			return nil, newRuleError(RuleErrNegativePrice, "session duration %q has negative price %v", sd.Description, sd.Price)
		}
	}
	for _, svc := range doc.Services {
		if svc.DurationHours <= 0 {
			return nil, newRuleError(RuleErrInvalidInterval, "service %q must have a positive duration, got %v hours", svc.Name, svc.DurationHours)
		}
		if svc.BasePrice < 0 {
			return nil, newRuleError(RuleErrNegativePrice, "service %q has negative base price %v", svc.Name, svc.BasePrice)
		}
		for _, addon := range svc.Addons {
			if addon.Price < 0 {
				return nil, newRuleError(RuleErrNegativePrice, "addon %q of service %q has negative price %v", addon.Name, svc.Name, addon.Price)
			}
		}
	}

	if err := validateTravelPolicy(doc.TravelPolicy); err != nil {
		return nil, err
	}
	for _, rate := range doc.SpecialDayRates {
		if rate.Multiplier < 0 {
			return nil, newRuleError(RuleErrNegativePrice, "special day rate %q has negative multiplier %v", rate.DayType, rate.Multiplier)
		}
		if rate.AdditionalFee != nil && *rate.AdditionalFee < 0 {
			return nil, newRuleError(RuleErrNegativePrice, "special day rate %q has negative additional fee %v", rate.DayType, *rate.AdditionalFee)
		}
	}
	// A zero maxGroupSize means the photographer sets no group cap.
	if doc.GroupSizeRules.MaxGroupSize < 0 {
		return nil, newRuleError(RuleErrInvalidInterval, "maxGroupSize must be >= 0, got %d", doc.GroupSizeRules.MaxGroupSize)
	}
	if doc.GroupSizeRules.AdditionalPersonFee < 0 {
		return nil, newRuleError(RuleErrNegativePrice, "additionalPersonFee must be >= 0, got %v", doc.GroupSizeRules.AdditionalPersonFee)
	}
	if doc.DepositAmount.Value < 0 {
		return nil, newRuleError(RuleErrNegativePrice, "deposit value must be >= 0, got %v", doc.DepositAmount.Value)
	}
	if err := validateCancellationPolicy(doc.CancellationPolicy); err != nil {
		return nil, err
	}

	for _, pm := range doc.PaymentMethods {
		if pm.ProcessingFee != nil && *pm.ProcessingFee < 0 {
			return nil, newRuleError(RuleErrNegativePrice, "payment method %q has negative processing fee %v", pm.Type, *pm.ProcessingFee)
		}
		rs.paymentMethods[strings.ToLower(pm.Type)] = pm
	}

	return rs, nil
}

func (rs *RuleSet) buildWeek(hours []models.DayHours) error {
	for _, dh := range hours {
		weekday, ok := weekdayNames[strings.ToLower(dh.Day)]
		if !ok {
			return newRuleError(RuleErrInvalidInterval, "unknown weekday %q in working hours", dh.Day)
		}
		sched := daySchedule{available: dh.IsAvailable}
		prevEnd := -1
		for _, slot := range dh.Slots {
			start, err := parseClock(slot.Start)
			if err != nil {
				return newRuleError(RuleErrInvalidInterval, "%s: %v", dh.Day, err)
			}
			end, err := parseClock(slot.End)
			if err != nil {
				return newRuleError(RuleErrInvalidInterval, "%s: %v", dh.Day, err)
			}
			if start >= end {
				return newRuleError(RuleErrInvalidInterval, "%s slot %s-%s: start must be before end", dh.Day, slot.Start, slot.End)
			}
			if start < prevEnd {
				return newRuleError(RuleErrInvalidInterval, "%s slots must be sorted and non-overlapping", dh.Day)
			}
			prevEnd = end
			sched.intervals = append(sched.intervals, Interval{Start: start, End: end})
		}
		rs.week[weekday] = sched
	}
	return nil
}

func validateTravelPolicy(tp models.TravelPolicy) error {
	if tp.MaxDistanceKm < 0 {
		return newRuleError(RuleErrInvalidInterval, "travel maxDistance must be >= 0, got %v", tp.MaxDistanceKm)
	}
	prev := math.Inf(-1)
	for _, tier := range tp.TravelFees {
		if tier.Fee < 0 {
			return newRuleError(RuleErrNegativePrice, "travel fee for %vkm is negative: %v", tier.DistanceKm, tier.Fee)
		}
		if tier.DistanceKm <= prev {
			return newRuleError(RuleErrNonMonotonicTier, "travel fee tiers must be strictly increasing in distance")
		}
		prev = tier.DistanceKm
	}
	return nil
}

func validateCancellationPolicy(cp models.CancellationPolicy) error {
	if cp.FreeCancellationHours < 0 {
		return newRuleError(RuleErrInvalidInterval, "freeCancellationHours must be >= 0, got %d", cp.FreeCancellationHours)
	}
	prevHours := math.MaxInt
	prevPercent := math.Inf(1)
	for _, tier := range cp.RefundPolicy {
		if tier.RefundPercent < 0 {
			return newRuleError(RuleErrNegativePrice, "refund percent for %dh tier is negative: %v", tier.Hours, tier.RefundPercent)
		}
		if tier.Hours >= prevHours {
			return newRuleError(RuleErrNonMonotonicTier, "refund tiers must be strictly decreasing in hours")
		}
		if tier.RefundPercent > prevPercent {
			return newRuleError(RuleErrNonMonotonicTier, "refund percent must not increase as cancellation gets later")
		}
		prevHours = tier.Hours
		prevPercent = tier.RefundPercent
	}
	return nil
}

// PhotographerID returns the owning photographer's identifier.
func (rs *RuleSet) PhotographerID() string { return rs.photographerID }

// Currency returns the quoting currency for this photographer.
func (rs *RuleSet) Currency() string { return rs.currency }

// CancellationPolicy returns the tiered refund policy.
func (rs *RuleSet) CancellationPolicy() models.CancellationPolicy { return rs.cancellation }

// IsDateFullyClosed reports whether a date accepts no bookings at all, either
// because it is explicitly marked unavailable or because the weekday is off.
// The second return value carries the configured reason, when present.
func (rs *RuleSet) IsDateFullyClosed(date string) (bool, string) {
	if reason, ok := rs.unavailable[date]; ok {
		if reason == "" {
			reason = "unavailable"
		}
		return true, reason
	}
	weekday, err := weekdayOf(date)
	if err != nil {
		return true, "invalid date"
	}
	sched := rs.week[weekday]
	if !sched.available || len(sched.intervals) == 0 {
		return true, "outside working days"
	}
	return false, ""
}

// WorkingIntervalsFor returns the configured open intervals for a date, or
// nil when the date is fully closed.
func (rs *RuleSet) WorkingIntervalsFor(date string) []Interval {
	if closed, _ := rs.IsDateFullyClosed(date); closed {
		return nil
	}
	weekday, _ := weekdayOf(date)
	return rs.week[weekday].intervals
}

// ResolveService matches a request to a named service, falling back to an
// exact session-duration match when no name is given. Returns nil when
// nothing matches.
func (rs *RuleSet) ResolveService(name string, durationHours float64) *ResolvedService {
	if name != "" {
		for _, svc := range rs.services {
			if strings.EqualFold(svc.Name, name) {
				resolved := &ResolvedService{
					Name:            svc.Name,
					DurationMinutes: hoursToMinutes(svc.DurationHours),
					BasePrice:       svc.BasePrice,
					MaxClients:      svc.MaxClients,
					addonPrices:     make(map[string]float64, len(svc.Addons)),
				}
				for _, addon := range svc.Addons {
					resolved.addonPrices[strings.ToLower(addon.Name)] = addon.Price
				}
				return resolved
			}
		}
		return nil
	}
	for _, sd := range rs.sessionDurations {
		if sd.DurationHours == durationHours {
			return &ResolvedService{
				Name:            sd.Description,
				DurationMinutes: hoursToMinutes(sd.DurationHours),
				BasePrice:       sd.Price,
			}
		}
	}
	return nil
}

// offeringForDuration finds the offering matching a requested duration, used
// to tag availability slots: bare session durations first, then named
// services. Returns empty values when nothing on offer has that duration.
func (rs *RuleSet) offeringForDuration(durationHours float64) (string, float64) {
	if resolved := rs.ResolveService("", durationHours); resolved != nil {
		return resolved.Name, resolved.BasePrice
	}
	for _, svc := range rs.services {
		if svc.DurationHours == durationHours {
			return svc.Name, svc.BasePrice
		}
	}
	return "", 0
}

// PaymentMethodFor looks up an enabled payment method by type, case-insensitive.
func (rs *RuleSet) PaymentMethodFor(name string) (models.PaymentMethod, bool) {
	pm, ok := rs.paymentMethods[strings.ToLower(name)]
	if !ok || !pm.Enabled {
		return models.PaymentMethod{}, false
	}
	return pm, true
}

// DepositFor resolves the deposit due on a quoted total. Returns nil when no
// deposit is required.
func (rs *RuleSet) DepositFor(total float64) *models.DepositDue {
	if !rs.depositRequired {
		return nil
	}
	due := &models.DepositDue{Kind: rs.deposit.Kind, Value: rs.deposit.Value}
	switch rs.deposit.Kind {
	case "percentage":
		due.Amount = roundMoney(total * rs.deposit.Value / 100)
	case "fixed":
		due.Amount = roundMoney(math.Min(rs.deposit.Value, total))
	default:
		return nil
	}
	return due
}

func hoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
