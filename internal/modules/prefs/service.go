// README: Preference service: typed accessors over the store with default fallbacks.
package prefs

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"wardharides/internal/logger"
	"wardharides/internal/modules/pricing"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// TripType is the last trip type the visitor picked. Unreadable or unknown
// values fall back to nagpur.
func (s *Service) TripType(ctx context.Context) pricing.TripType {
	v := s.get(ctx, KeyTripType, DefaultTripType)
	if t := pricing.TripType(v); t.Valid() {
		return t
	}
	return DefaultTripType
}

func (s *Service) SetTripType(ctx context.Context, t pricing.TripType) error {
	return s.store.Set(ctx, KeyTripType, string(t))
}

func (s *Service) Pickup(ctx context.Context) string {
	return s.get(ctx, KeyPickup, DefaultPickup)
}

func (s *Service) SetPickup(ctx context.Context, pickup string) error {
	pickup = strings.TrimSpace(pickup)
	if pickup == "" {
		return nil
	}
	return s.store.Set(ctx, KeyPickup, pickup)
}

// Revenue is the running total shown on the admin dashboard, seeded at 15400.
func (s *Service) Revenue(ctx context.Context) int64 {
	v := s.get(ctx, KeyRevenue, "")
	if v == "" {
		return DefaultRevenue
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Warn(logger.RequestID(ctx), "prefs", "revenue", "stored revenue is not a number", err)
		return DefaultRevenue
	}
	return n
}

// AddRevenue seeds the counter on first use and adds amount atomically.
func (s *Service) AddRevenue(ctx context.Context, amount int64) (int64, error) {
	if _, err := s.store.SetNX(ctx, KeyRevenue, strconv.FormatInt(DefaultRevenue, 10)); err != nil {
		return 0, err
	}
	return s.store.IncrBy(ctx, KeyRevenue, amount)
}

// Surge reports the admin switch. A missing key means off.
func (s *Service) Surge(ctx context.Context) (bool, error) {
	v, err := s.store.Get(ctx, KeySurge)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *Service) SetSurge(ctx context.Context, on bool) error {
	return s.store.Set(ctx, KeySurge, strconv.FormatBool(on))
}

// InitSurge sets the switch only if nobody has set it yet.
func (s *Service) InitSurge(ctx context.Context, on bool) error {
	_, err := s.store.SetNX(ctx, KeySurge, strconv.FormatBool(on))
	return err
}

func (s *Service) get(ctx context.Context, key, def string) string {
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn(logger.RequestID(ctx), "prefs", "get", "read "+key+" failed, using default", err)
		}
		return def
	}
	return v
}
