package booking

import (
	"fmt"

	"shutterbook/models"
)

// AvailabilityOptions tunes how the daily booking cap interacts with the
// offered slot list. With CapOfferedSlots false (the default) the engine
// offers every candidate slot the working hours allow and leaves the
// maxBookingsPerDay cap to the validator; with it true, a day whose remaining
// capacity is n offers at most n slots and a full day offers none.
type AvailabilityOptions struct {
	CapOfferedSlots bool
}

// ComputeAvailability computes the open slots per date for one photographer,
// given a consistent snapshot of existing bookings. Dates are inclusive on
// both ends; a fromDate after toDate yields an empty mapping. The requested
// duration is the slot step: candidates start at each free interval's start
// and advance by the duration, so offered slots never overlap one another.
func ComputeAvailability(
	rs *RuleSet,
	bookings []models.Booking,
	fromDate, toDate string,
	durationHours float64,
	opts AvailabilityOptions,
) (map[string][]models.Slot, error) {
	durationMinutes := hoursToMinutes(durationHours)
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("requested duration must be positive, got %v hours", durationHours)
	}
	from, err := parseDate(fromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toDate)
	if err != nil {
		return nil, err
	}

	serviceName, basePrice := rs.offeringForDuration(durationHours)

	byDate := groupActiveBookingsByDate(bookings)
	result := make(map[string][]models.Slot)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateFormat)
		if closed, _ := rs.IsDateFullyClosed(date); closed {
			continue
		}

		dayBookings := byDate[date]
		busy := make([]Interval, 0, len(dayBookings))
		for _, b := range dayBookings {
			if b.End <= b.Start {
				continue
			}
			busy = append(busy, addBuffer(Interval{Start: b.Start, End: b.End}, rs.bufferMinutes))
		}

		var slots []models.Slot
		for _, working := range rs.WorkingIntervalsFor(date) {
			for _, free := range subtractIntervals(working, busy) {
				// A session cannot span a closed gap: candidates are cut from
				// each contiguous free interval independently.
				for start := free.Start; start+durationMinutes <= free.End; start += durationMinutes {
					slots = append(slots, models.Slot{
						Date:            date,
						Start:           start,
						End:             start + durationMinutes,
						ServiceName:     serviceName,
						DurationMinutes: durationMinutes,
						BasePrice:       basePrice,
						Currency:        rs.currency,
					})
				}
			}
		}

		if opts.CapOfferedSlots {
			remaining := rs.maxBookingsPerDay - len(dayBookings)
			if remaining <= 0 {
				continue
			}
			if len(slots) > remaining {
				slots = slots[:remaining]
			}
		}
		if len(slots) > 0 {
			result[date] = slots
		}
	}
	return result, nil
}

// groupActiveBookingsByDate indexes pending/confirmed bookings by date.
func groupActiveBookingsByDate(bookings []models.Booking) map[string][]models.Booking {
	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		if !b.OccupiesCalendar() {
			continue
		}
		byDate[b.Date] = append(byDate[b.Date], b)
	}
	return byDate
}
