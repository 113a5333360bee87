package maps

import (
	"context"
	"fmt"
	"log"

	"googlemaps.github.io/maps"
)

// MetersPerMile converts Directions API leg distances to miles.
const MetersPerMile = 1609.34

// RouteService handles interactions with the Google Directions API from a fixed origin.
type RouteService struct {
	client *maps.Client
	origin string
}

// NewRouteService creates a RouteService for the given API key and origin.
// An empty key yields a service that never resolves a distance, matching how a missing key
// behaves at request time. Extra options (e.g. maps.WithBaseURL) are passed to the client.
func NewRouteService(apiKey, origin string, opts ...maps.ClientOption) (*RouteService, error) {
	if apiKey == "" {
		return &RouteService{origin: origin}, nil
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, origin: origin}, nil
}

// Origin returns the fixed starting point used for every route.
func (s *RouteService) Origin() string {
	return s.origin
}

// ResolveOneWayMiles returns the driving distance in miles from the origin to destination.
// Every failure (no key, transport error, non-OK status, no route) is logged and reported as ok=false.
func (s *RouteService) ResolveOneWayMiles(ctx context.Context, destination string) (float64, bool) {
	meters, err := s.oneWayMeters(ctx, destination)
	if err != nil {
		log.Printf("maps: cannot resolve distance to %q: %v", destination, err)
		return 0, false
	}
	return float64(meters) / MetersPerMile, true
}

func (s *RouteService) oneWayMeters(ctx context.Context, destination string) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("GOOGLE_MAPS_API_KEY is not set")
	}

	r := &maps.DirectionsRequest{
		Origin:      s.origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 || routes[0].Legs[0] == nil {
		return 0, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	if leg.Distance.Meters <= 0 {
		return 0, fmt.Errorf("no distance found in directions response")
	}
	return leg.Distance.Meters, nil
}
