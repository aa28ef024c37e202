// README: Handoff service: turns a quoted session into an operator message, link and log entry.
package handoff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wardharides/internal/logger"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
)

const sideEffectTimeout = 3 * time.Second

type Config struct {
	WhatsAppNumber string
	FormURL        string
}

type Service struct {
	cfg      Config
	revenue  RevenueCounter
	recorder Recorder
	now      func() time.Time
}

// NewService accepts a nil recorder when no database is configured.
func NewService(cfg Config, revenue RevenueCounter, recorder Recorder) *Service {
	return &Service{cfg: cfg, revenue: revenue, recorder: recorder, now: time.Now}
}

// Handoff builds the message and link for a quoted session. Revenue and the
// log row are written in the background and never fail the handoff.
func (s *Service) Handoff(ctx context.Context, sess session.Session, q pricing.Quote, channel Channel) (Result, error) {
	payload := BuildPayload(sess, q)
	msg := Message(payload)
	link, err := Link(channel, s.cfg.WhatsAppNumber, s.cfg.FormURL, msg)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:      uuid.New(),
		Channel: channel,
		URL:     link,
		Message: msg,
		Payload: payload,
		Quote:   q,
	}
	rec := Record{
		ID:           res.ID,
		SessionID:    sess.ID,
		Channel:      channel,
		Payload:      payload,
		RatesVersion: q.RatesVersion,
		CreatedAt:    s.now().UTC(),
	}
	go s.sideEffects(context.WithoutCancel(ctx), rec)

	logger.Event(logger.RequestID(ctx), "handoff", string(channel), res.ID.String())
	return res, nil
}

func (s *Service) sideEffects(ctx context.Context, rec Record) {
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	reqID := logger.RequestID(ctx)

	if s.revenue != nil {
		if _, err := s.revenue.AddRevenue(ctx, rec.Payload.FinalPrice); err != nil {
			logger.Warn(reqID, "handoff", "revenue", "revenue counter not updated", err)
		}
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, rec); err != nil {
			logger.Warn(reqID, "handoff", "record", "handoff log row not written", err)
		}
	}
}

// Receipt renders the PDF for a quoted session.
func (s *Service) Receipt(sess session.Session, q pricing.Quote) ([]byte, error) {
	return RenderReceipt(BuildPayload(sess, q), q, s.now())
}
