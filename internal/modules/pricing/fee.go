package pricing

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// Fee returns the one-way delivery fee for the given one-way distance.
// Anything inside the free zone costs nothing; any trip leaving it pays at least Minimum.
func (p Policy) Fee(oneWayMiles float64) decimal.Decimal {
	miles := decimal.NewFromFloat(oneWayMiles)
	if miles.LessThanOrEqual(p.FreeMiles) {
		return decimal.Zero
	}
	fee := miles.Sub(p.FreeMiles).Mul(p.PerMile)
	return decimal.Max(fee, p.Minimum)
}

// RoundTripFee doubles an already computed one-way fee.
// It is never recomputed on doubled mileage, so the minimum is not re-applied per leg.
func (p Policy) RoundTripFee(oneWayFee decimal.Decimal) decimal.Decimal {
	return oneWayFee.Mul(two)
}

// ComputeFee applies DefaultPolicy.
func ComputeFee(oneWayMiles float64) decimal.Decimal {
	return DefaultPolicy.Fee(oneWayMiles)
}
