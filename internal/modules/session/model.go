// README: Quote session model: one visitor's trip selection, pickup and accepted promo.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"wardharides/internal/modules/pricing"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side copy of the widget state. Promo holds an accepted
// discount as an absolute amount; it survives trip edits until replaced or cleared.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	Trip      pricing.TripRequest `json:"trip"`
	Pickup    string              `json:"pickup"`
	Promo     *pricing.Discount   `json:"promo,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type Store interface {
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	Save(ctx context.Context, s Session) error
}

// SurgeSource is read on every quote so an admin toggle applies immediately.
type SurgeSource interface {
	SurgeActive(ctx context.Context) bool
}
