package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shutterbook/models"
)

func floatPtr(v float64) *float64 { return &v }

// newTestRules returns a complete, valid rules document. 2024-01-01 is a
// Monday, which the date-based tests rely on.
func newTestRules() *models.BookingRules {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	hours := make([]models.DayHours, 0, 7)
	for _, day := range weekdays {
		hours = append(hours, models.DayHours{
			Day:         day,
			IsAvailable: true,
			Slots:       []models.HoursSlot{{Start: "09:00", End: "17:00"}},
		})
	}
	hours = append(hours,
		models.DayHours{
			Day:         "saturday",
			IsAvailable: true,
			Slots:       []models.HoursSlot{{Start: "10:00", End: "14:00"}},
		},
		models.DayHours{Day: "sunday", IsAvailable: false},
	)

	return &models.BookingRules{
		PhotographerID:     "ph-1",
		Currency:           "USD",
		AdvanceBookingDays: 90,
		MinNoticeHours:     24,
		MaxBookingsPerDay:  3,
		BufferMinutes:      30,
		SessionDurations: []models.SessionDuration{
			{DurationHours: 2, Price: 250, Description: "Extended session"},
		},
		Services: []models.PhotoService{
			{
				Name:          "Portrait Session",
				Description:   "Studio or outdoor portraits",
				BasePrice:     150,
				DurationHours: 1,
				MaxClients:    2,
				Addons: []models.ServiceAddon{
					{Name: "Prints", Price: 25, Description: "Printed photo set"},
					{Name: "Album", Price: 40, Description: "Bound album"},
					{Name: "Extra Edits", Price: 15, Description: "Additional retouched shots"},
				},
			},
			{
				Name:          "Wedding Package",
				Description:   "Full day coverage",
				BasePrice:     1200,
				DurationHours: 8,
				MaxClients:    10,
			},
		},
		WorkingHours: hours,
		UnavailableDates: []models.UnavailableDate{
			{Date: "2024-01-10", Reason: "travelling"},
		},
		TravelPolicy: models.TravelPolicy{
			MaxDistanceKm:      100,
			FreeWithinDistance: floatPtr(10),
			TravelFees: []models.TravelFeeTier{
				{DistanceKm: 20, Fee: 200},
				{DistanceKm: 50, Fee: 500},
			},
		},
		SpecialDayRates: []models.SpecialDayRate{
			{DayType: "weekend", Multiplier: 1.25},
			{DayType: "holiday", Multiplier: 1.5, AdditionalFee: floatPtr(100)},
			{DayType: "seasonal", Multiplier: 1.5, AdditionalFee: floatPtr(50)},
		},
		GroupSizeRules: models.GroupSizeRules{
			MaxGroupSize:        6,
			AdditionalPersonFee: 30,
		},
		DepositRequired: true,
		DepositAmount:   models.DepositAmount{Kind: "percentage", Value: 20},
		CancellationPolicy: models.CancellationPolicy{
			FreeCancellationHours: 72,
			RefundPolicy: []models.RefundTier{
				{Hours: 48, RefundPercent: 50},
				{Hours: 24, RefundPercent: 25},
			},
		},
		PaymentMethods: []models.PaymentMethod{
			{Type: "card", Enabled: true, ProcessingFee: floatPtr(2.5)},
			{Type: "cash", Enabled: true},
			{Type: "paypal", Enabled: false},
		},
	}
}

func newTestRuleSet(t *testing.T) *RuleSet {
	t.Helper()
	rs, err := NewRuleSet(newTestRules())
	require.NoError(t, err)
	return rs
}

func TestNewRuleSetValid(t *testing.T) {
	rs := newTestRuleSet(t)
	assert.Equal(t, "ph-1", rs.PhotographerID())
	assert.Equal(t, "USD", rs.Currency())
}

func TestNewRuleSetRejectsInvalidWorkingHours(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.BookingRules)
	}{
		{"start after end", func(r *models.BookingRules) {
			r.WorkingHours[0].Slots = []models.HoursSlot{{Start: "17:00", End: "09:00"}}
		}},
		{"overlapping slots", func(r *models.BookingRules) {
			r.WorkingHours[0].Slots = []models.HoursSlot{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "17:00"},
			}
		}},
		{"unsorted slots", func(r *models.BookingRules) {
			r.WorkingHours[0].Slots = []models.HoursSlot{
				{Start: "13:00", End: "17:00"},
				{Start: "09:00", End: "12:00"},
			}
		}},
		{"unparseable clock", func(r *models.BookingRules) {
			r.WorkingHours[0].Slots = []models.HoursSlot{{Start: "9am", End: "5pm"}}
		}},
		{"unknown weekday", func(r *models.BookingRules) {
			r.WorkingHours[0].Day = "funday"
		}},
		{"negative group cap", func(r *models.BookingRules) {
			r.GroupSizeRules.MaxGroupSize = -1
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := newTestRules()
			tc.mutate(doc)
			_, err := NewRuleSet(doc)
			require.Error(t, err)
			var ruleErr *RuleError
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, RuleErrInvalidInterval, ruleErr.Code)
		})
	}
}

func TestNewRuleSetRejectsNonMonotonicTiers(t *testing.T) {
	t.Run("travel fees", func(t *testing.T) {
		doc := newTestRules()
		doc.TravelPolicy.TravelFees = []models.TravelFeeTier{
			{DistanceKm: 50, Fee: 500},
			{DistanceKm: 20, Fee: 200},
		}
		_, err := NewRuleSet(doc)
		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, RuleErrNonMonotonicTier, ruleErr.Code)
	})

	t.Run("refund hours increasing", func(t *testing.T) {
		doc := newTestRules()
		doc.CancellationPolicy.RefundPolicy = []models.RefundTier{
			{Hours: 24, RefundPercent: 25},
			{Hours: 48, RefundPercent: 50},
		}
		_, err := NewRuleSet(doc)
		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, RuleErrNonMonotonicTier, ruleErr.Code)
	})

	t.Run("refund percent increasing as cancellation gets later", func(t *testing.T) {
		doc := newTestRules()
		doc.CancellationPolicy.RefundPolicy = []models.RefundTier{
			{Hours: 48, RefundPercent: 25},
			{Hours: 24, RefundPercent: 50},
		}
		_, err := NewRuleSet(doc)
		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, RuleErrNonMonotonicTier, ruleErr.Code)
	})
}

func TestNewRuleSetRejectsNegativePrices(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.BookingRules)
	}{
		{"service base price", func(r *models.BookingRules) { r.Services[0].BasePrice = -1 }},
		{"addon price", func(r *models.BookingRules) { r.Services[0].Addons[0].Price = -5 }},
		{"session duration price", func(r *models.BookingRules) { r.SessionDurations[0].Price = -250 }},
		{"travel fee", func(r *models.BookingRules) { r.TravelPolicy.TravelFees[0].Fee = -10 }},
		{"additional person fee", func(r *models.BookingRules) { r.GroupSizeRules.AdditionalPersonFee = -30 }},
		{"deposit value", func(r *models.BookingRules) { r.DepositAmount.Value = -20 }},
		{"processing fee", func(r *models.BookingRules) { r.PaymentMethods[0].ProcessingFee = floatPtr(-2.5) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := newTestRules()
			tc.mutate(doc)
			_, err := NewRuleSet(doc)
			var ruleErr *RuleError
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, RuleErrNegativePrice, ruleErr.Code)
		})
	}
}

func TestIsDateFullyClosed(t *testing.T) {
	rs := newTestRuleSet(t)

	closed, reason := rs.IsDateFullyClosed("2024-01-10") // explicit unavailable date
	assert.True(t, closed)
	assert.Equal(t, "travelling", reason)

	closed, _ = rs.IsDateFullyClosed("2024-01-07") // a Sunday
	assert.True(t, closed)

	closed, _ = rs.IsDateFullyClosed("2024-01-01") // a Monday
	assert.False(t, closed)
}

func TestWorkingIntervalsFor(t *testing.T) {
	rs := newTestRuleSet(t)

	assert.Equal(t, []Interval{{Start: 540, End: 1020}}, rs.WorkingIntervalsFor("2024-01-01"))
	assert.Equal(t, []Interval{{Start: 600, End: 840}}, rs.WorkingIntervalsFor("2024-01-06"))
	assert.Nil(t, rs.WorkingIntervalsFor("2024-01-07"))
	assert.Nil(t, rs.WorkingIntervalsFor("2024-01-10"))
}

func TestResolveService(t *testing.T) {
	rs := newTestRuleSet(t)

	t.Run("by name, case-insensitive", func(t *testing.T) {
		resolved := rs.ResolveService("portrait session", 0)
		require.NotNil(t, resolved)
		assert.Equal(t, "Portrait Session", resolved.Name)
		assert.Equal(t, 60, resolved.DurationMinutes)
		assert.Equal(t, 150.0, resolved.BasePrice)
		assert.Equal(t, 2, resolved.MaxClients)
	})

	t.Run("by exact duration", func(t *testing.T) {
		resolved := rs.ResolveService("", 2)
		require.NotNil(t, resolved)
		assert.Equal(t, "Extended session", resolved.Name)
		assert.Equal(t, 120, resolved.DurationMinutes)
		assert.Equal(t, 250.0, resolved.BasePrice)
		assert.Zero(t, resolved.MaxClients)
	})

	t.Run("unknown name", func(t *testing.T) {
		assert.Nil(t, rs.ResolveService("Underwater Shoot", 0))
	})

	t.Run("duration not on offer", func(t *testing.T) {
		assert.Nil(t, rs.ResolveService("", 3))
	})
}

func TestDepositFor(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		rs := newTestRuleSet(t)
		due := rs.DepositFor(475)
		require.NotNil(t, due)
		assert.Equal(t, 95.0, due.Amount)
	})

	t.Run("fixed capped at total", func(t *testing.T) {
		doc := newTestRules()
		doc.DepositAmount = models.DepositAmount{Kind: "fixed", Value: 200}
		rs, err := NewRuleSet(doc)
		require.NoError(t, err)

		due := rs.DepositFor(500)
		require.NotNil(t, due)
		assert.Equal(t, 200.0, due.Amount)

		due = rs.DepositFor(120)
		require.NotNil(t, due)
		assert.Equal(t, 120.0, due.Amount)
	})

	t.Run("not required", func(t *testing.T) {
		doc := newTestRules()
		doc.DepositRequired = false
		rs, err := NewRuleSet(doc)
		require.NoError(t, err)
		assert.Nil(t, rs.DepositFor(500))
	})
}

func TestPaymentMethodFor(t *testing.T) {
	rs := newTestRuleSet(t)

	_, ok := rs.PaymentMethodFor("Card")
	assert.True(t, ok)

	_, ok = rs.PaymentMethodFor("paypal") // configured but disabled
	assert.False(t, ok)

	_, ok = rs.PaymentMethodFor("crypto")
	assert.False(t, ok)
}
