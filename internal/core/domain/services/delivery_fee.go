package services

import (
	"fmt"
	"time"
)

// MaxDeliveryDistanceKm is the hard delivery radius. Beyond it every order is
// ineligible regardless of subtotal.
const MaxDeliveryDistanceKm = 8.0

// ReasonAddressNotFound is the verdict reason used when the destination address
// could not be geocoded. A failed lookup must never silently default to the
// nearest fee band.
const ReasonAddressNotFound = "could not locate address"

// FeeVerdict is the result of a delivery fee calculation.
// It is a derived value, recomputed on every address or subtotal change and once
// more, authoritatively, at order submission. FeeCents is reported for display
// even when the verdict is ineligible.
type FeeVerdict struct {
	FeeCents   int64
	Eligible   bool
	Reason     string
	DistanceKm float64
}

// feeBand is one closed-upper distance interval with its own fee and
// minimum-order-value rule.
type feeBand struct {
	maxKm            float64
	feeCents         int64
	minSubtotalCents int64
	promo            bool
}

// feeBands partitions the delivery radius. Bands are ordered by distance and
// checked first-match; the promo flag marks the band whose fee drops to zero
// while the free-delivery promotion runs.
func feeBands() []feeBand {
	return []feeBand{
		{maxKm: 2, feeCents: 0, minSubtotalCents: 2000},
		{maxKm: 4, feeCents: 299, minSubtotalCents: 2000, promo: true},
		{maxKm: 6, feeCents: 399, minSubtotalCents: 3000},
		{maxKm: 8, feeCents: 499, minSubtotalCents: 7500},
	}
}

// DeliveryFeeCalculator computes delivery fee verdicts from distance and
// subtotal. It is a stateless domain service; Quote is a pure function of
// (distance, subtotal, now), which makes every verdict reproducible.
type DeliveryFeeCalculator struct {
	promoEndsAt time.Time
}

// NewDeliveryFeeCalculator creates a calculator with the configured end date of
// the free-delivery promotion. A zero promoEndsAt means the promotion is over.
func NewDeliveryFeeCalculator(promoEndsAt time.Time) DeliveryFeeCalculator {
	return DeliveryFeeCalculator{promoEndsAt: promoEndsAt}
}

// Quote returns the fee/eligibility verdict for a delivery over the given
// great-circle distance and order subtotal (minor currency units).
//
// Rules:
//   - Beyond MaxDeliveryDistanceKm the order is ineligible regardless of subtotal.
//   - Within a band, a subtotal below the band's minimum yields an ineligible
//     verdict with a reason naming the shortfall; the band fee is still reported
//     for display.
//   - The promo band's fee is zero while now is not after the promotion end date.
func (c DeliveryFeeCalculator) Quote(distanceKm float64, subtotalCents int64, now time.Time) FeeVerdict {
	if distanceKm > MaxDeliveryDistanceKm {
		return FeeVerdict{
			Eligible:   false,
			Reason:     fmt.Sprintf("delivery is not available beyond %.0f km", MaxDeliveryDistanceKm),
			DistanceKm: distanceKm,
		}
	}

	for _, band := range feeBands() {
		if distanceKm > band.maxKm {
			continue
		}

		fee := band.feeCents
		if band.promo && !now.After(c.promoEndsAt) {
			fee = 0
		}

		if subtotalCents < band.minSubtotalCents {
			return FeeVerdict{
				FeeCents: fee,
				Eligible: false,
				Reason: fmt.Sprintf(
					"subtotal %s is %s below the %s minimum for deliveries up to %g km",
					formatAmount(subtotalCents),
					formatAmount(band.minSubtotalCents-subtotalCents),
					formatAmount(band.minSubtotalCents),
					band.maxKm,
				),
				DistanceKm: distanceKm,
			}
		}

		return FeeVerdict{FeeCents: fee, Eligible: true, DistanceKm: distanceKm}
	}

	// Unreachable: the last band's upper bound equals MaxDeliveryDistanceKm.
	return FeeVerdict{Eligible: false, Reason: "no fee band matched", DistanceKm: distanceKm}
}

// UnlocatableVerdict returns the distinct ineligible verdict used when the
// destination address could not be geocoded.
func (c DeliveryFeeCalculator) UnlocatableVerdict() FeeVerdict {
	return FeeVerdict{Eligible: false, Reason: ReasonAddressNotFound}
}

// formatAmount renders minor currency units as a decimal amount for verdict
// reasons, e.g. 2500 -> "25.00".
func formatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
