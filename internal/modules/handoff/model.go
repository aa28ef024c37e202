// README: Handoff payload, channel and log record definitions plus the pickup location list.
package handoff

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"wardharides/internal/modules/pricing"
)

var ErrUnknownChannel = errors.New("unknown handoff channel")

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelForm     Channel = "form"
)

func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelWhatsApp, ChannelForm:
		return c, nil
	case "":
		return ChannelWhatsApp, nil
	}
	return "", ErrUnknownChannel
}

// PickupLocations are the campus pickup points offered by the widget.
var PickupLocations = []string{
	"DMIMS Main Gate",
	"Girls Hostel (Sawangi)",
	"Boys Hostel (Sawangi)",
	"T-Point",
	"Staff Quarters",
	"Other",
}

// Payload is what the operator needs to confirm a booking by hand.
type Payload struct {
	Mode         pricing.Mode           `json:"mode"`
	TripType     pricing.TripType       `json:"trip_type"`
	Pickup       string                 `json:"pickup"`
	Passengers   int                    `json:"passengers"`
	Package      pricing.HangoutPackage `json:"package,omitempty"`
	DistanceKm   int                    `json:"distance_km,omitempty"`
	SurgeApplied bool                   `json:"surge_applied"`
	PromoCode    string                 `json:"promo_code,omitempty"`
	FinalPrice   int64                  `json:"final_price"`
}

type Result struct {
	ID      uuid.UUID     `json:"id"`
	Channel Channel       `json:"channel"`
	URL     string        `json:"url"`
	Message string        `json:"message"`
	Payload Payload       `json:"payload"`
	Quote   pricing.Quote `json:"quote"`
}

// Record is one row of the handoff log.
type Record struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	Channel      Channel   `json:"channel"`
	Payload      Payload   `json:"payload"`
	RatesVersion string    `json:"rates_version"`
	CreatedAt    time.Time `json:"created_at"`
}

type Recorder interface {
	Record(ctx context.Context, r Record) error
}

type RevenueCounter interface {
	AddRevenue(ctx context.Context, amount int64) (int64, error)
}
