// README: Driving distance lookup through the Google Maps Directions API, used to suggest outstation km.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("no driving route found")

// DefaultOrigin is where every trip starts unless the caller says otherwise.
const DefaultOrigin = "Wardha, Maharashtra"

type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client directionsClient
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DistanceKm returns the driving distance in whole km, rounded up, and the
// expected drive time for the first route leg.
func (s *RouteService) DistanceKm(ctx context.Context, origin, destination string) (int, time.Duration, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = DefaultOrigin
	}
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: strings.TrimSpace(destination),
		Mode:        maps.TravelModeDriving,
		Language:    "en",
		Region:      "IN",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, 0, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return (leg.Distance.Meters + 999) / 1000, leg.Duration, nil
}
