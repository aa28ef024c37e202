// README: Ledger service: simulate, save, list and clear trip profit entries.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wardharides/internal/logger"
)

const defaultListLimit = 100

type Service struct {
	store Store
	now   func() time.Time
}

// NewService accepts a nil store; persistence calls then return ErrUnavailable.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Simulate(in SimulationInput) (Simulation, error) {
	return Simulate(in)
}

func (s *Service) Save(ctx context.Context, in SimulationInput) (Entry, error) {
	sim, err := Simulate(in)
	if err != nil {
		return Entry{}, err
	}
	if s.store == nil {
		return Entry{}, ErrUnavailable
	}
	e := Entry{
		ID:         uuid.New(),
		Simulation: sim,
		Details:    sim.Details(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Save(ctx, e); err != nil {
		return Entry{}, err
	}
	logger.Event(logger.RequestID(ctx), "ledger", "save", e.ID.String())
	return e, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.store.List(ctx, limit)
}

func (s *Service) Clear(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, ErrUnavailable
	}
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	logger.Event(logger.RequestID(ctx), "ledger", "clear", "entries removed")
	return n, nil
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s.store == nil {
		return Summary{}, ErrUnavailable
	}
	return s.store.Summary(ctx)
}
