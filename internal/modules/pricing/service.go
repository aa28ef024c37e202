// README: Pricing service: owns the active rate table and prices trips for handlers and sessions.
package pricing

import (
	"context"
	"errors"

	"wardharides/internal/logger"
)

type Service struct {
	rates RateTable
}

func NewService(rates RateTable) (*Service, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &Service{rates: rates}, nil
}

func (s *Service) Rates() RateTable {
	return s.rates
}

// Quote prices a trip with an already accepted discount (nil for none).
func (s *Service) Quote(ctx context.Context, trip TripRequest, surgeActive bool, discount *Discount) (Quote, error) {
	q, err := Compute(trip, surgeActive, discount, s.rates)
	if err != nil {
		logger.Warn(logger.RequestID(ctx), "pricing", "quote", "unpriceable trip selection", err)
		return Quote{}, err
	}
	return q, nil
}

// ResolvePromo validates code against the trip's current pre-surge base.
func (s *Service) ResolvePromo(ctx context.Context, trip TripRequest, code string) (Discount, error) {
	base, _, err := Derive(trip, s.rates)
	if err != nil {
		logger.Warn(logger.RequestID(ctx), "pricing", "resolve_promo", "unpriceable trip selection", err)
		return Discount{}, err
	}
	return ResolvePromo(code, base, s.rates)
}

type Preview struct {
	Quote         Quote
	PromoRejected bool
}

// Preview prices a one-off trip, resolving trip.PromoCode on the spot. A bad code
// leaves the quote undiscounted and sets PromoRejected.
func (s *Service) Preview(ctx context.Context, trip TripRequest, surgeActive bool) (Preview, error) {
	var discount *Discount
	rejected := false
	if NormalizePromoCode(trip.PromoCode) != "" {
		d, err := s.ResolvePromo(ctx, trip, trip.PromoCode)
		switch {
		case err == nil:
			discount = &d
		case errors.Is(err, ErrInvalidPromo):
			rejected = true
		default:
			return Preview{}, err
		}
	}
	q, err := s.Quote(ctx, trip, surgeActive, discount)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Quote: q, PromoRejected: rejected}, nil
}
