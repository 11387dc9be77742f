package booking

import "time"

// DayType classifies a date for special-day pricing.
type DayType string

const (
	DayTypeWeekend  DayType = "weekend"
	DayTypeHoliday  DayType = "holiday"
	DayTypeSeasonal DayType = "seasonal"
)

// DayTypeResolver supplies the holiday/seasonal classification for a date.
// Holidays and seasons are not derivable from the date alone, so the caller
// injects a resolver built from its own calendar configuration. Weekends are
// always derived from the calendar and need not be reported by the resolver.
type DayTypeResolver func(date string) []DayType

// NoSpecialDays is a resolver that tags nothing; weekends still apply.
func NoSpecialDays(string) []DayType { return nil }

// SeasonRange is an inclusive date range tagged as seasonal.
type SeasonRange struct {
	Start string // "2006-01-02"
	End   string
}

// NewCalendarResolver builds a DayTypeResolver from a holiday date list and a
// set of seasonal ranges, typically loaded from configuration.
func NewCalendarResolver(holidays []string, seasons []SeasonRange) DayTypeResolver {
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		holidaySet[d] = struct{}{}
	}
	return func(date string) []DayType {
		var tags []DayType
		if _, ok := holidaySet[date]; ok {
			tags = append(tags, DayTypeHoliday)
		}
		for _, season := range seasons {
			if date >= season.Start && date <= season.End {
				tags = append(tags, DayTypeSeasonal)
				break
			}
		}
		return tags
	}
}

// isWeekend reports whether the date falls on Saturday or Sunday.
func isWeekend(date string) bool {
	weekday, err := weekdayOf(date)
	if err != nil {
		return false
	}
	return weekday == time.Saturday || weekday == time.Sunday
}
