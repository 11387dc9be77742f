package models

import "time"

// BookingRules is a photographer's booking configuration document. One
// document exists per photographer; it is validated on write and again when
// loaded into the evaluation engine.
type BookingRules struct {
	PhotographerID     string             `bson:"photographer_id" json:"photographerId"`
	Currency           string             `bson:"currency,omitempty" json:"currency,omitempty"` // ISO code, defaults to USD
	AdvanceBookingDays int                `bson:"advance_booking_days" json:"advanceBookingDays"`
	MinNoticeHours     int                `bson:"min_notice_hours" json:"minNoticeHours"`
	MaxBookingsPerDay  int                `bson:"max_bookings_per_day" json:"maxBookingsPerDay"`
	BufferMinutes      int                `bson:"buffer_minutes" json:"bufferMinutes"` // gap enforced around every session
	SessionDurations   []SessionDuration  `bson:"session_durations,omitempty" json:"sessionDurations,omitempty"`
	Services           []PhotoService     `bson:"services,omitempty" json:"services,omitempty"`
	WorkingHours       []DayHours         `bson:"working_hours" json:"workingHours"`
	UnavailableDates   []UnavailableDate  `bson:"unavailable_dates,omitempty" json:"unavailableDates,omitempty"`
	TravelPolicy       TravelPolicy       `bson:"travel_policy" json:"travelPolicy"`
	SpecialDayRates    []SpecialDayRate   `bson:"special_day_rates,omitempty" json:"specialDayRates,omitempty"`
	GroupSizeRules     GroupSizeRules     `bson:"group_size_rules" json:"groupSizeRules"`
	DepositRequired    bool               `bson:"deposit_required" json:"depositRequired"`
	DepositAmount      DepositAmount      `bson:"deposit_amount,omitempty" json:"depositAmount,omitempty"`
	CancellationPolicy CancellationPolicy `bson:"cancellation_policy" json:"cancellationPolicy"`
	PaymentMethods     []PaymentMethod    `bson:"payment_methods,omitempty" json:"paymentMethods,omitempty"`
	CreatedAt          time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// SessionDuration is a bookable bare session length for clients who book by
// duration rather than by named service.
type SessionDuration struct {
	DurationHours float64 `bson:"duration_hours" json:"durationHours"`
	Price         float64 `bson:"price" json:"price"`
	Description   string  `bson:"description,omitempty" json:"description,omitempty"`
}

// PhotoService is a named offering with a fixed duration and base price.
type PhotoService struct {
	Name          string         `bson:"name" json:"name"`
	Description   string         `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice     float64        `bson:"base_price" json:"basePrice"`
	DurationHours float64        `bson:"duration_hours" json:"durationHours"`
	MaxClients    int            `bson:"max_clients,omitempty" json:"maxClients,omitempty"` // 0 means no per-service limit
	Addons        []ServiceAddon `bson:"addons,omitempty" json:"addons,omitempty"`
}

// ServiceAddon is an optional extra sold with a service.
type ServiceAddon struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// DayHours is the weekly working-hours entry for one weekday.
type DayHours struct {
	Day         string      `bson:"day" json:"day"` // lowercase weekday name
	IsAvailable bool        `bson:"is_available" json:"isAvailable"`
	Slots       []HoursSlot `bson:"slots,omitempty" json:"slots,omitempty"`
}

// HoursSlot is one open window within a working day.
type HoursSlot struct {
	Start string `bson:"start" json:"start"` // "15:04"
	End   string `bson:"end" json:"end"`
}

// UnavailableDate marks a specific date as fully closed.
type UnavailableDate struct {
	Date   string `bson:"date" json:"date"` // "2006-01-02"
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// TravelPolicy bounds on-location sessions and prices the travel.
type TravelPolicy struct {
	MaxDistanceKm      float64         `bson:"max_distance_km" json:"maxDistanceKm"`
	FreeWithinDistance *float64        `bson:"free_within_distance,omitempty" json:"freeWithinDistance,omitempty"`
	TravelFees         []TravelFeeTier `bson:"travel_fees,omitempty" json:"travelFees,omitempty"`
}

// TravelFeeTier charges a flat fee for distances up to DistanceKm. Tiers must
// be strictly increasing in distance.
type TravelFeeTier struct {
	DistanceKm float64 `bson:"distance_km" json:"distanceKm"`
	Fee        float64 `bson:"fee" json:"fee"`
}

// SpecialDayRate adjusts pricing on weekends, holidays or seasonal dates.
type SpecialDayRate struct {
	DayType       string   `bson:"day_type" json:"dayType"` // "weekend", "holiday" or "seasonal"
	Multiplier    float64  `bson:"multiplier" json:"multiplier"`
	AdditionalFee *float64 `bson:"additional_fee,omitempty" json:"additionalFee,omitempty"`
}

// GroupSizeRules caps group sessions and prices the overflow beyond a
// service's own client limit.
type GroupSizeRules struct {
	MaxGroupSize        int     `bson:"max_group_size" json:"maxGroupSize"`
	AdditionalPersonFee float64 `bson:"additional_person_fee" json:"additionalPersonFee"`
}

// DepositAmount describes the deposit taken at booking time, either a fixed
// amount or a percentage of the total.
type DepositAmount struct {
	Kind  string  `bson:"type" json:"type"` // "fixed" or "percentage"
	Value float64 `bson:"value" json:"value"`
}

// CancellationPolicy is the tiered refund schedule for cancellations.
type CancellationPolicy struct {
	FreeCancellationHours int          `bson:"free_cancellation_hours" json:"freeCancellationHours"`
	RefundPolicy          []RefundTier `bson:"refund_policy,omitempty" json:"refundPolicy,omitempty"`
}

// RefundTier refunds RefundPercent when cancelling at least Hours before the
// session. Tiers must descend by hours with non-increasing percents.
type RefundTier struct {
	Hours         int     `bson:"hours" json:"hours"`
	RefundPercent float64 `bson:"refund_percent" json:"refundPercent"`
}

// PaymentMethod is a way the photographer accepts payment.
type PaymentMethod struct {
	Type          string   `bson:"type" json:"type"` // e.g. "card", "cash"
	Enabled       bool     `bson:"enabled" json:"enabled"`
	ProcessingFee *float64 `bson:"processing_fee,omitempty" json:"processingFee,omitempty"` // percent of the subtotal
}
