package booking

import (
	"time"

	"shutterbook/models"
)

// Refund computes the tiered cancellation refund for a booking. Cancelling at
// least freeCancellationHours before the session refunds everything; after
// that the first tier (tiers descend by hours) whose threshold is at or below
// the remaining hours applies; cancelling past the last threshold refunds
// nothing. The amount is rounded half-up to two decimals.
func Refund(policy models.CancellationPolicy, bookingStart, cancelAt time.Time, paidAmount float64) models.RefundQuote {
	hoursUntilStart := bookingStart.Sub(cancelAt).Hours()

	percent := 0.0
	if hoursUntilStart >= float64(policy.FreeCancellationHours) {
		percent = 100
	} else {
		for _, tier := range policy.RefundPolicy {
			if float64(tier.Hours) <= hoursUntilStart {
				percent = tier.RefundPercent
				break
			}
		}
	}

	return models.RefundQuote{
		RefundPercent: percent,
		RefundAmount:  roundMoney(paidAmount * percent / 100),
	}
}
