// README: Trip request, breakdown line, discount and quote definitions for the fare engine.
package pricing

import (
	"bytes"
	"errors"
)

var (
	// ErrUnknownSelection marks a mode/trip/package combination the rate table cannot price.
	// It is a programming error on the caller's side and is never turned into a zero price.
	ErrUnknownSelection = errors.New("unknown trip selection")
	ErrInvalidPromo     = errors.New("invalid promo code")
	ErrInvalidRates     = errors.New("invalid rate table")
)

type Mode string

const (
	ModeWithDriver Mode = "with_driver"
	ModeSelfDrive  Mode = "self_drive"
)

type TripType string

const (
	TripNagpur     TripType = "nagpur"
	TripAirport    TripType = "airport"
	TripHangout    TripType = "hangout"
	TripOutstation TripType = "outstation"
)

func (t TripType) Valid() bool {
	switch t {
	case TripNagpur, TripAirport, TripHangout, TripOutstation:
		return true
	}
	return false
}

type NagpurPackage string

const (
	NagpurFull     NagpurPackage = "full"
	NagpurTwoPoint NagpurPackage = "two_point"
)

type AirportMode string

const (
	AirportDrop   AirportMode = "drop"
	AirportPickup AirportMode = "pickup"
)

type HangoutPackage string

const (
	HangoutCafe HangoutPackage = "cafe"
	HangoutDam  HangoutPackage = "dam"
)

type SelfDrivePackage string

const (
	SelfDriveDaily      SelfDrivePackage = "daily"
	SelfDriveTwelveHour SelfDrivePackage = "twelve_hour"
)

// Km is a distance that decodes from a JSON number or string. Anything
// non-numeric or negative becomes 0.
type Km int

func (k *Km) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	*k = Km(ParseKm(string(data)))
	return nil
}

// TripRequest is the full input snapshot of one quote. Package fields are only
// read for the mode/trip type they belong to.
type TripRequest struct {
	Mode             Mode             `json:"mode"`
	TripType         TripType         `json:"trip_type"`
	NagpurPackage    NagpurPackage    `json:"nagpur_package"`
	AirportMode      AirportMode      `json:"airport_mode"`
	HangoutPackage   HangoutPackage   `json:"hangout_package"`
	SelfDrivePackage SelfDrivePackage `json:"self_drive_package"`
	Days             int              `json:"days"`
	StartDate        string           `json:"start_date,omitempty"`
	EndDate          string           `json:"end_date,omitempty"`
	DistanceKm       Km               `json:"distance_km"`
	Passengers       int              `json:"passengers"`
	LuggageBags      int              `json:"luggage_bags"`
	NightDriving     bool             `json:"night_driving"`
	PromoCode        string           `json:"promo_code,omitempty"`
}

// DefaultTrip is the widget's initial state.
func DefaultTrip() TripRequest {
	return TripRequest{
		Mode:             ModeWithDriver,
		TripType:         TripNagpur,
		NagpurPackage:    NagpurFull,
		AirportMode:      AirportDrop,
		HangoutPackage:   HangoutCafe,
		SelfDrivePackage: SelfDriveDaily,
		Days:             1,
		DistanceKm:       250,
		Passengers:       4,
		LuggageBags:      1,
	}
}

type Line struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Discount is an accepted promo, frozen as an absolute amount.
type Discount struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

type Quote struct {
	BasePrice       int64  `json:"base_price"`
	SurgeAmount     int64  `json:"surge_amount"`
	Discount        int64  `json:"discount"`
	FinalPrice      int64  `json:"final_price"`
	Currency        string `json:"currency"`
	Breakdown       []Line `json:"breakdown"`
	Passengers      int    `json:"passengers"`
	PerPersonShare  int64  `json:"per_person_share,omitempty"`
	LuggageWarning  bool   `json:"luggage_warning"`
	SecurityDeposit int64  `json:"security_deposit,omitempty"`
	RatesVersion    string `json:"rates_version"`
}
