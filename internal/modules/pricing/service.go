// README: Pricing service turns a destination into a delivery fee estimate.
package pricing

import (
	"context"
	"log"
)

// DistanceResolver turns free-text destinations into one-way driving miles.
// ok is false whenever the distance cannot be determined.
type DistanceResolver interface {
	ResolveOneWayMiles(ctx context.Context, destination string) (miles float64, ok bool)
}

type Service struct {
	resolver DistanceResolver
	policy   Policy
}

func NewService(resolver DistanceResolver) *Service {
	return &Service{resolver: resolver, policy: DefaultPolicy}
}

// Policy returns the fee policy used for quotes.
func (s *Service) Policy() Policy {
	return s.policy
}

// Quote resolves the destination and prices it. It returns nil when no distance is available;
// callers treat that as "no quote" rather than as a failure.
func (s *Service) Quote(ctx context.Context, destination string, roundTrip bool) *DeliveryQuote {
	if s.resolver == nil {
		log.Printf("pricing: no distance resolver configured")
		return nil
	}
	miles, ok := s.resolver.ResolveOneWayMiles(ctx, destination)
	if !ok {
		return nil
	}
	return s.quoteFor(destination, miles, roundTrip)
}

func (s *Service) quoteFor(destination string, miles float64, roundTrip bool) *DeliveryQuote {
	q := &DeliveryQuote{
		Destination: destination,
		OneWayMiles: miles,
		OneWayFee:   s.policy.Fee(miles),
	}
	if roundTrip {
		rtMiles := miles * 2
		rtFee := s.policy.RoundTripFee(q.OneWayFee)
		q.RoundTripMiles = &rtMiles
		q.RoundTripFee = &rtFee
	}
	return q
}
