package usecase

import (
	"math"

	"storekit-backend/internal/domain"
)

// DefaultItemWeightKg is charged for every unit whose product has no weight.
const DefaultItemWeightKg = 0.5

const reasonUndeliverable = "delivery not available to this location"

// resolve applies the zone → global → fallback precedence used for every
// optional zone field.
func resolve[T any](zoneValue, globalValue *T, fallback T) T {
	if zoneValue != nil {
		return *zoneValue
	}
	if globalValue != nil {
		return *globalValue
	}
	return fallback
}

// CalculateShipping quotes shipping for a cart. It always returns a number:
// when zones are enabled but nothing matches, the global rates are used and
// the result is labelled Unserviceable. Use CheckAvailability to gate orders.
func CalculateShipping(dest domain.Destination, shipping domain.StoreShipping, cart domain.CartContext) domain.ShippingCalculation {
	global := shipping.Settings
	cfg := shipping.Config

	if !cfg.UseZones || !dest.HasAddress() {
		return globalCalculation(domain.ZoneNameStandard, global, cart)
	}

	zone := MatchZone(dest.State, dest.Pincode, cfg.Zones)
	if zone == nil {
		return globalCalculation(domain.ZoneNameUnserviceable, global, cart)
	}

	threshold := resolve(zone.FreeShippingThreshold, &global.FreeShippingThreshold, 0)
	isFree := qualifiesForFreeShipping(cart.Subtotal, threshold)

	baseRate := zone.FlatRate
	if isFree {
		baseRate = 0
	}

	var weightCharge float64
	if !isFree {
		weightCharge = WeightCharge(cart.TotalWeightKg, cfg.WeightBased)
	}

	codAvailable := resolve(zone.CODAvailable, &global.CODEnabled, false)
	var codFee float64
	if cart.PaymentMethod == domain.PaymentMethodCOD && codAvailable {
		codFee = resolve(zone.CODFee, &global.CODFee, 0)
	}

	matched := *zone
	return domain.ShippingCalculation{
		Zone:           &matched,
		ZoneName:       zone.Name,
		BaseRate:       baseRate,
		WeightCharge:   weightCharge,
		CODFee:         codFee,
		TotalShipping:  baseRate + weightCharge + codFee,
		IsFreeShipping: isFree,
		EstimatedDays:  zone.EstimatedDays,
		CODAvailable:   codAvailable,
	}
}

func globalCalculation(zoneName string, global domain.StoreShippingSettings, cart domain.CartContext) domain.ShippingCalculation {
	isFree := qualifiesForFreeShipping(cart.Subtotal, global.FreeShippingThreshold)

	baseRate := global.FlatRateNational
	if isFree {
		baseRate = 0
	}

	var codFee float64
	if cart.PaymentMethod == domain.PaymentMethodCOD && global.CODEnabled {
		codFee = global.CODFee
	}

	return domain.ShippingCalculation{
		ZoneName:       zoneName,
		BaseRate:       baseRate,
		CODFee:         codFee,
		TotalShipping:  baseRate + codFee,
		IsFreeShipping: isFree,
		CODAvailable:   global.CODEnabled,
	}
}

// qualifiesForFreeShipping treats a non-positive threshold as "no free
// shipping". The boundary is inclusive.
func qualifiesForFreeShipping(subtotal, threshold float64) bool {
	return threshold > 0 && subtotal >= threshold
}

// WeightCharge bills every started kilogram above the base weight.
func WeightCharge(totalWeightKg float64, pricing *domain.WeightBasedPricing) float64 {
	if pricing == nil || !pricing.Enabled {
		return 0
	}
	excess := math.Max(0, totalWeightKg-pricing.BaseWeightKg)
	// Round away float noise so 1.1-0.1 bills one kilogram, not two.
	excess = math.Round(excess*1e6) / 1e6
	return math.Ceil(excess) * pricing.PerKgRate
}

// TotalWeight sums line weights, charging DefaultItemWeightKg per unit when
// a line has no weight.
func TotalWeight(lines []domain.CartLine) float64 {
	var total float64
	for _, l := range lines {
		w := DefaultItemWeightKg
		if l.WeightKg != nil {
			w = *l.WeightKg
		}
		total += w * float64(l.Quantity)
	}
	return total
}

// CalculateCartTotal never returns a negative total.
func CalculateCartTotal(subtotal, shipping, tax, discount float64) float64 {
	return math.Max(0, subtotal+shipping+tax-discount)
}

// CheckAvailability reports whether a destination can be delivered to at all.
// With zones disabled every destination is serviceable.
func CheckAvailability(dest domain.Destination, cfg domain.ShippingConfig) domain.AvailabilityResult {
	if !cfg.UseZones {
		return domain.AvailabilityResult{Available: true}
	}
	zone := MatchZone(dest.State, dest.Pincode, cfg.Zones)
	if zone == nil {
		return domain.AvailabilityResult{Available: false, Reason: reasonUndeliverable}
	}
	matched := *zone
	return domain.AvailabilityResult{Available: true, Zone: &matched}
}
