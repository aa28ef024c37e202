// README: Session service: create, edit trip, apply/clear promo and recompute quotes.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wardharides/internal/logger"
	"wardharides/internal/modules/prefs"
	"wardharides/internal/modules/pricing"
)

type Service struct {
	store   Store
	pricing *pricing.Service
	prefs   *prefs.Service
	surge   SurgeSource
	now     func() time.Time
}

func NewService(store Store, pricingSvc *pricing.Service, prefsSvc *prefs.Service, surge SurgeSource) *Service {
	return &Service{
		store:   store,
		pricing: pricingSvc,
		prefs:   prefsSvc,
		surge:   surge,
		now:     time.Now,
	}
}

// Create starts a session from the default trip, with trip type and pickup
// taken from the stored preferences.
func (s *Service) Create(ctx context.Context) (Session, error) {
	trip := pricing.DefaultTrip()
	trip.TripType = s.prefs.TripType(ctx)

	now := s.now().UTC()
	sess := Session{
		ID:        uuid.New(),
		Trip:      trip,
		Pickup:    s.prefs.Pickup(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	logger.Event(logger.RequestID(ctx), "session", "create", sess.ID.String())
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	return s.store.Get(ctx, id)
}

// UpdateTrip replaces the trip selection. An accepted promo stays attached with
// its original amount. Selections the rate table cannot price are refused.
func (s *Service) UpdateTrip(ctx context.Context, id uuid.UUID, trip pricing.TripRequest, pickup string) (Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	trip = pricing.Normalize(trip)
	trip.PromoCode = ""
	if _, _, err := pricing.Derive(trip, s.pricing.Rates()); err != nil {
		return Session{}, err
	}

	sess.Trip = trip
	if p := strings.TrimSpace(pickup); p != "" {
		sess.Pickup = p
	}
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	s.rememberChoices(ctx, sess)
	return sess, nil
}

// ApplyPromo resolves code against the current pre-surge base. A rejected code
// leaves the session, including any earlier promo, untouched.
func (s *Service) ApplyPromo(ctx context.Context, id uuid.UUID, code string) (Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	d, err := s.pricing.ResolvePromo(ctx, sess.Trip, code)
	if err != nil {
		return Session{}, err
	}
	sess.Promo = &d
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	logger.Event(logger.RequestID(ctx), "session", "apply_promo", d.Code)
	return sess, nil
}

func (s *Service) ClearPromo(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Promo == nil {
		return sess, nil
	}
	sess.Promo = nil
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Quote recomputes from the stored state and the surge switch as it is right now.
func (s *Service) Quote(ctx context.Context, id uuid.UUID) (Session, pricing.Quote, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, pricing.Quote{}, err
	}
	q, err := s.pricing.Quote(ctx, sess.Trip, s.surge.SurgeActive(ctx), sess.Promo)
	if err != nil {
		return Session{}, pricing.Quote{}, err
	}
	return sess, q, nil
}

func (s *Service) rememberChoices(ctx context.Context, sess Session) {
	if err := s.prefs.SetTripType(ctx, sess.Trip.TripType); err != nil {
		logger.Warn(logger.RequestID(ctx), "session", "remember_choices", "trip type not saved", err)
	}
	if err := s.prefs.SetPickup(ctx, sess.Pickup); err != nil {
		logger.Warn(logger.RequestID(ctx), "session", "remember_choices", "pickup not saved", err)
	}
}
