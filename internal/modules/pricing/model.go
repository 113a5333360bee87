// README: Delivery fee policy and quote definitions.
package pricing

import "github.com/shopspring/decimal"

// Policy is a tiered mileage policy: a free zone, then a per-mile rate with a floor.
type Policy struct {
	FreeMiles decimal.Decimal
	PerMile   decimal.Decimal
	Minimum   decimal.Decimal
}

// DefaultPolicy is "Option A": first 50 one-way miles free, then $1.25/mile, $75 minimum.
var DefaultPolicy = Policy{
	FreeMiles: decimal.NewFromInt(50),
	PerMile:   decimal.RequireFromString("1.25"),
	Minimum:   decimal.NewFromInt(75),
}

// DeliveryQuote is the fee estimate for one destination.
// RoundTripMiles and RoundTripFee are set only when a round trip was requested.
type DeliveryQuote struct {
	Destination    string
	OneWayMiles    float64
	OneWayFee      decimal.Decimal
	RoundTripMiles *float64
	RoundTripFee   *decimal.Decimal
}

// IsRoundTrip reports whether the quote carries round-trip figures.
func (q DeliveryQuote) IsRoundTrip() bool {
	return q.RoundTripMiles != nil && q.RoundTripFee != nil
}
