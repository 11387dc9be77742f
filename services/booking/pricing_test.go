package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shutterbook/models"
)

func resolvePortrait(t *testing.T, rs *RuleSet) *ResolvedService {
	t.Helper()
	resolved := rs.ResolveService("Portrait Session", 0)
	require.NotNil(t, resolved)
	return resolved
}

func TestBuildQuoteFullBreakdown(t *testing.T) {
	rs := newTestRuleSet(t)

	// Wednesday portrait for four people, 15km out, with two addons.
	req := newTestRequest()
	req.ClientCount = 4
	req.DistanceKm = 15
	req.Addons = []string{"Prints", "Album"}

	quote := BuildQuote(rs, req, resolvePortrait(t, rs), NoSpecialDays)
	assert.Equal(t, 150.0, quote.BasePrice)
	assert.Equal(t, 65.0, quote.AddonTotal)
	assert.Equal(t, 200.0, quote.TravelFee)
	assert.Equal(t, 60.0, quote.GroupSurcharge) // two people over maxClients at 30 each
	assert.Nil(t, quote.SpecialDay)
	assert.Equal(t, 475.0, quote.Total)
	require.NotNil(t, quote.Deposit)
	assert.Equal(t, 95.0, quote.Deposit.Amount)
	assert.Equal(t, "USD", quote.Currency)
}

func TestTravelFee(t *testing.T) {
	rs := newTestRuleSet(t)

	cases := []struct {
		distance float64
		fee      float64
	}{
		{0, 0},
		{10, 0}, // at the free radius
		{15, 200},
		{20, 200}, // at the first tier boundary
		{35, 500},
		{50, 500},
		{80, 500}, // beyond every tier but within maxDistance: highest tier applies
	}
	for _, tc := range cases {
		assert.Equal(t, tc.fee, travelFee(rs.travel, tc.distance), "distance %vkm", tc.distance)
	}
}

func TestTravelFeeNoTiers(t *testing.T) {
	tp := models.TravelPolicy{MaxDistanceKm: 100}
	assert.Equal(t, 0.0, travelFee(tp, 60))
}

func TestBuildQuoteAddonOrderIrrelevant(t *testing.T) {
	rs := newTestRuleSet(t)
	resolved := resolvePortrait(t, rs)

	reqA := newTestRequest()
	reqA.Addons = []string{"Prints", "Album", "Extra Edits"}
	reqB := newTestRequest()
	reqB.Addons = []string{"Extra Edits", "Prints", "Album"}

	quoteA := BuildQuote(rs, reqA, resolved, NoSpecialDays)
	quoteB := BuildQuote(rs, reqB, resolved, NoSpecialDays)
	assert.Equal(t, 80.0, quoteA.AddonTotal)
	assert.Equal(t, quoteA.Total, quoteB.Total)
}

func TestBuildQuoteIgnoresUnknownAddons(t *testing.T) {
	rs := newTestRuleSet(t)

	req := newTestRequest()
	req.Addons = []string{"Drone Footage"}
	quote := BuildQuote(rs, req, resolvePortrait(t, rs), NoSpecialDays)
	assert.Zero(t, quote.AddonTotal)
	assert.Equal(t, 150.0, quote.Total)
}

func TestBuildQuoteWeekend(t *testing.T) {
	rs := newTestRuleSet(t)

	// Saturday: 1.25x on base plus addons, nothing else.
	req := newTestRequest()
	req.Date = "2024-01-06"
	quote := BuildQuote(rs, req, resolvePortrait(t, rs), NoSpecialDays)
	require.NotNil(t, quote.SpecialDay)
	assert.Equal(t, "weekend", quote.SpecialDay.DayType)
	assert.Equal(t, 37.5, quote.SpecialDay.Adjustment)
	assert.Equal(t, 187.5, quote.Total)
}

func TestBuildQuoteSpecialDayPrecedence(t *testing.T) {
	rs := newTestRuleSet(t)
	resolved := resolvePortrait(t, rs)

	t.Run("holiday outranks weekend on multiplier", func(t *testing.T) {
		resolver := func(string) []DayType { return []DayType{DayTypeHoliday} }
		req := newTestRequest()
		req.Date = "2024-01-06" // Saturday tagged as a holiday
		quote := BuildQuote(rs, req, resolved, resolver)
		require.NotNil(t, quote.SpecialDay)
		assert.Equal(t, "holiday", quote.SpecialDay.DayType)
		// 150 * 0.5 + 100 additional fee
		assert.Equal(t, 175.0, quote.SpecialDay.Adjustment)
		assert.Equal(t, 325.0, quote.Total)
	})

	t.Run("multiplier tie breaks on additional fee", func(t *testing.T) {
		// Holiday and seasonal both run at 1.5x; the holiday's larger fee wins.
		resolver := func(string) []DayType { return []DayType{DayTypeHoliday, DayTypeSeasonal} }
		quote := BuildQuote(rs, newTestRequest(), resolved, resolver)
		require.NotNil(t, quote.SpecialDay)
		assert.Equal(t, "holiday", quote.SpecialDay.DayType)
	})

	t.Run("tag without a configured rate charges nothing", func(t *testing.T) {
		doc := newTestRules()
		doc.SpecialDayRates = nil
		bare, err := NewRuleSet(doc)
		require.NoError(t, err)

		req := newTestRequest()
		req.Date = "2024-01-06"
		quote := BuildQuote(bare, req, resolved, NoSpecialDays)
		assert.Nil(t, quote.SpecialDay)
		assert.Equal(t, 150.0, quote.Total)
	})
}

func TestBuildQuoteProcessingFee(t *testing.T) {
	rs := newTestRuleSet(t)
	resolved := resolvePortrait(t, rs)

	t.Run("card charges a percentage of the subtotal", func(t *testing.T) {
		req := newTestRequest()
		req.PaymentMethod = "card"
		quote := BuildQuote(rs, req, resolved, NoSpecialDays)
		assert.Equal(t, 3.75, quote.ProcessingFee)
		assert.Equal(t, 153.75, quote.Total)
	})

	t.Run("cash has no fee", func(t *testing.T) {
		req := newTestRequest()
		req.PaymentMethod = "cash"
		quote := BuildQuote(rs, req, resolved, NoSpecialDays)
		assert.Zero(t, quote.ProcessingFee)
		assert.Equal(t, 150.0, quote.Total)
	})
}

func TestBuildQuoteRoundsOnlyTheTotal(t *testing.T) {
	rs := newTestRuleSet(t)

	// 165 * 2.5% = 4.125: the fee keeps full precision, the total rounds.
	req := newTestRequest()
	req.Addons = []string{"Extra Edits"}
	req.PaymentMethod = "card"
	quote := BuildQuote(rs, req, resolvePortrait(t, rs), NoSpecialDays)
	assert.Equal(t, 4.125, quote.ProcessingFee)
	assert.Equal(t, 169.13, quote.Total)
	require.NotNil(t, quote.Deposit)
	assert.Equal(t, 33.83, quote.Deposit.Amount)
}

func TestBuildQuoteSurchargeWithoutGroupCap(t *testing.T) {
	// With no group cap configured, overflow past the service's own limit is
	// still priced per additional person.
	doc := newTestRules()
	doc.GroupSizeRules = models.GroupSizeRules{AdditionalPersonFee: 30}
	rs, err := NewRuleSet(doc)
	require.NoError(t, err)

	req := newTestRequest()
	req.ClientCount = 9
	quote := BuildQuote(rs, req, resolvePortrait(t, rs), NoSpecialDays)
	assert.Equal(t, 210.0, quote.GroupSurcharge) // seven people over maxClients
}

func TestBuildQuoteNoSurchargeWithoutClientLimit(t *testing.T) {
	rs := newTestRuleSet(t)

	// Duration-resolved sessions carry no maxClients, so group size never
	// surcharges them.
	resolved := rs.ResolveService("", 2)
	require.NotNil(t, resolved)

	req := newTestRequest()
	req.ServiceName = ""
	req.DurationHours = 2
	req.ClientCount = 5
	quote := BuildQuote(rs, req, resolved, NoSpecialDays)
	assert.Zero(t, quote.GroupSurcharge)
	assert.Equal(t, 250.0, quote.Total)
}

func TestNewCalendarResolver(t *testing.T) {
	resolver := NewCalendarResolver(
		[]string{"2024-12-25"},
		[]SeasonRange{{Start: "2024-06-01", End: "2024-08-31"}},
	)

	assert.Equal(t, []DayType{DayTypeHoliday}, resolver("2024-12-25"))
	assert.Equal(t, []DayType{DayTypeSeasonal}, resolver("2024-07-15"))
	assert.Equal(t, []DayType{DayTypeSeasonal}, resolver("2024-06-01")) // range is inclusive
	assert.Nil(t, resolver("2024-03-10"))
}
