package booking

import (
	"math"
	"strings"

	"shutterbook/models"
)

// BuildQuote prices an accepted booking request. The verdict's resolved
// service carries the base price and duration; the day-type resolver supplies
// holiday/seasonal tags for the booking date. Pricing is deterministic:
// intermediate terms keep full float precision, and only the grand total and
// deposit are rounded (half-up, two decimals).
func BuildQuote(rs *RuleSet, req models.BookingRequest, resolved *ResolvedService, dayTypes DayTypeResolver) *models.Quote {
	if dayTypes == nil {
		dayTypes = NoSpecialDays
	}

	quote := &models.Quote{
		ServiceName:     resolved.Name,
		DurationMinutes: resolved.DurationMinutes,
		BasePrice:       resolved.BasePrice,
		Currency:        rs.currency,
	}

	// Addon selection is assumed pre-filtered to the resolved service's
	// addon list; names that do not match contribute nothing.
	for _, name := range req.Addons {
		if price, ok := resolved.addonPrices[strings.ToLower(name)]; ok {
			quote.AddonTotal += price
		}
	}

	quote.TravelFee = travelFee(rs.travel, req.DistanceKm)

	if special := specialDayCharge(rs, req.Date, dayTypes, quote.BasePrice+quote.AddonTotal); special != nil {
		quote.SpecialDay = special
	}

	if resolved.MaxClients > 0 && req.ClientCount > resolved.MaxClients &&
		(rs.group.MaxGroupSize == 0 || req.ClientCount <= rs.group.MaxGroupSize) {
		quote.GroupSurcharge = float64(req.ClientCount-resolved.MaxClients) * rs.group.AdditionalPersonFee
	}

	subtotal := quote.BasePrice + quote.AddonTotal + quote.TravelFee + quote.GroupSurcharge
	if quote.SpecialDay != nil {
		subtotal += quote.SpecialDay.Adjustment
	}

	if req.PaymentMethod != "" {
		if pm, ok := rs.PaymentMethodFor(req.PaymentMethod); ok && pm.ProcessingFee != nil {
			quote.ProcessingFee = subtotal * *pm.ProcessingFee / 100
			subtotal += quote.ProcessingFee
		}
	}

	quote.Total = roundMoney(subtotal)
	quote.Deposit = rs.DepositFor(quote.Total)
	return quote
}

// travelFee resolves the distance-based travel fee. Within the free radius
// the fee is zero; otherwise the smallest tier covering the distance applies,
// and a distance beyond every tier (but still within maxDistance) pays the
// highest tier's fee.
func travelFee(tp models.TravelPolicy, distanceKm float64) float64 {
	if tp.FreeWithinDistance != nil && distanceKm <= *tp.FreeWithinDistance {
		return 0
	}
	if len(tp.TravelFees) == 0 {
		return 0
	}
	for _, tier := range tp.TravelFees {
		if tier.DistanceKm >= distanceKm {
			return tier.Fee
		}
	}
	return tp.TravelFees[len(tp.TravelFees)-1].Fee
}

// specialDayCharge picks the applicable special-day rate for the booking
// date. A date can match the weekend rule by calendar plus externally tagged
// holiday/seasonal rules; when several apply, the highest multiplier wins and
// ties break toward the larger additional fee.
func specialDayCharge(rs *RuleSet, date string, dayTypes DayTypeResolver, adjustable float64) *models.SpecialDay {
	applicable := make(map[DayType]bool)
	if isWeekend(date) {
		applicable[DayTypeWeekend] = true
	}
	for _, tag := range dayTypes(date) {
		applicable[tag] = true
	}
	if len(applicable) == 0 {
		return nil
	}

	var best *models.SpecialDayRate
	for i := range rs.specialRates {
		rate := &rs.specialRates[i]
		if !applicable[DayType(rate.DayType)] {
			continue
		}
		if best == nil || rate.Multiplier > best.Multiplier ||
			(rate.Multiplier == best.Multiplier && additionalFee(rate) > additionalFee(best)) {
			best = rate
		}
	}
	if best == nil {
		return nil
	}

	return &models.SpecialDay{
		DayType:       best.DayType,
		Multiplier:    best.Multiplier,
		AdditionalFee: additionalFee(best),
		Adjustment:    adjustable*(best.Multiplier-1) + additionalFee(best),
	}
}

func additionalFee(rate *models.SpecialDayRate) float64 {
	if rate.AdditionalFee == nil {
		return 0
	}
	return *rate.AdditionalFee
}

// roundMoney rounds a non-negative amount half-up to two decimal places.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
