// README: Admin service: surge switch, revenue and ledger overview for the dashboard.
package admin

import (
	"context"
	"errors"

	"wardharides/internal/logger"
	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/prefs"
)

const recentHandoffs = 10

type HandoffLister interface {
	Recent(ctx context.Context, limit int) ([]handoff.Record, error)
}

type Overview struct {
	Revenue        int64            `json:"revenue"`
	SurgeActive    bool             `json:"surge_active"`
	RatesVersion   string           `json:"rates_version"`
	Ledger         *ledger.Summary  `json:"ledger,omitempty"`
	RecentHandoffs []handoff.Record `json:"recent_handoffs,omitempty"`
}

type Service struct {
	prefs        *prefs.Service
	ledger       *ledger.Service
	handoffs     HandoffLister
	ratesVersion string
}

// NewService accepts a nil handoffs lister when no database is configured.
func NewService(prefsSvc *prefs.Service, ledgerSvc *ledger.Service, handoffs HandoffLister, ratesVersion string) *Service {
	return &Service{prefs: prefsSvc, ledger: ledgerSvc, handoffs: handoffs, ratesVersion: ratesVersion}
}

func (s *Service) SetSurge(ctx context.Context, on bool) error {
	if err := s.prefs.SetSurge(ctx, on); err != nil {
		return err
	}
	state := "off"
	if on {
		state = "on"
	}
	logger.Event(logger.RequestID(ctx), "admin", "set_surge", "surge "+state)
	return nil
}

// SurgeActive never fails a quote: an unreadable switch counts as off.
func (s *Service) SurgeActive(ctx context.Context) bool {
	on, err := s.prefs.Surge(ctx)
	if err != nil {
		logger.Warn(logger.RequestID(ctx), "admin", "surge_active", "surge switch unreadable, pricing without surge", err)
		return false
	}
	return on
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	ov := Overview{
		Revenue:      s.prefs.Revenue(ctx),
		SurgeActive:  s.SurgeActive(ctx),
		RatesVersion: s.ratesVersion,
	}

	sum, err := s.ledger.Summary(ctx)
	switch {
	case err == nil:
		ov.Ledger = &sum
	case errors.Is(err, ledger.ErrUnavailable):
	default:
		return Overview{}, err
	}

	if s.handoffs != nil {
		recent, err := s.handoffs.Recent(ctx, recentHandoffs)
		if err != nil {
			logger.Warn(logger.RequestID(ctx), "admin", "overview", "recent handoffs unavailable", err)
		} else {
			ov.RecentHandoffs = recent
		}
	}
	return ov, nil
}
