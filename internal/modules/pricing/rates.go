// README: Rate table (all tunable price constants) with selector lookups and JSON loading.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type LocalRates struct {
	Full     int64 `json:"full"`
	TwoPoint int64 `json:"two_point"`
}

type AirportRates struct {
	Drop   int64 `json:"drop"`
	Pickup int64 `json:"pickup"`
}

type OutstationRates struct {
	MinKmPerDay           int64 `json:"min_km_per_day"`
	RatePerKm             int64 `json:"rate_per_km"`
	DriverAllowancePerDay int64 `json:"driver_allowance_per_day"`
	NightFlatCharge       int64 `json:"night_flat_charge"`
}

type HangoutRates struct {
	Cafe int64 `json:"cafe"`
	Dam  int64 `json:"dam"`
}

type WithDriverRates struct {
	Local      LocalRates      `json:"local"`
	Airport    AirportRates    `json:"airport"`
	Outstation OutstationRates `json:"outstation"`
	Hangout    HangoutRates    `json:"hangout"`
}

type SelfDriveRates struct {
	DailyRate       int64        `json:"daily_rate"`
	TwelveHourRate  int64        `json:"twelve_hour_rate"`
	Hangout         HangoutRates `json:"hangout"`
	IncludedKm      int64        `json:"included_km"`
	ExcessRatePerKm int64        `json:"excess_rate_per_km"`
	SecurityDeposit int64        `json:"security_deposit"`
}

type PromoKind string

const (
	PromoFlat    PromoKind = "flat"
	PromoPercent PromoKind = "percent"
)

// PromoRule is either a flat rupee amount or a share of the pre-surge base
// expressed in basis points (500 = 5%).
type PromoRule struct {
	Kind        PromoKind `json:"kind"`
	Amount      int64     `json:"amount,omitempty"`
	BasisPoints int64     `json:"basis_points,omitempty"`
}

// DiscountFor returns the rupee discount for a pre-surge base, rounded half up.
// Rounding happens here, when the code is accepted, rather than on the final
// price: the session stores a whole-rupee amount that stays sticky across trip
// changes, at the cost of the final price differing by up to one rupee from
// rounding after subtraction (EXAMREADY on 1210 gives 1149, not 1150).
func (r PromoRule) DiscountFor(base int64) int64 {
	switch r.Kind {
	case PromoFlat:
		return r.Amount
	case PromoPercent:
		if base <= 0 {
			return 0
		}
		return (base*r.BasisPoints + 5000) / 10000
	}
	return 0
}

// RateTable is replaced as a whole; Version identifies which table priced a quote.
type RateTable struct {
	Version         string               `json:"version"`
	WithDriver      WithDriverRates      `json:"with_driver"`
	SelfDrive       SelfDriveRates       `json:"self_drive"`
	SurgeMultiplier float64              `json:"surge_multiplier"`
	Promos          map[string]PromoRule `json:"promos"`
}

func DefaultRates() RateTable {
	return RateTable{
		Version: "2024.1",
		WithDriver: WithDriverRates{
			Local:   LocalRates{Full: 3500, TwoPoint: 2300},
			Airport: AirportRates{Drop: 2200, Pickup: 2300},
			Outstation: OutstationRates{
				MinKmPerDay:           300,
				RatePerKm:             12,
				DriverAllowancePerDay: 300,
				NightFlatCharge:       300,
			},
			Hangout: HangoutRates{Cafe: 1200, Dam: 1800},
		},
		SelfDrive: SelfDriveRates{
			DailyRate:       2500,
			TwelveHourRate:  1500,
			Hangout:         HangoutRates{Cafe: 800, Dam: 1200},
			IncludedKm:      250,
			ExcessRatePerKm: 5,
			SecurityDeposit: 5000,
		},
		SurgeMultiplier: 1.25,
		Promos: map[string]PromoRule{
			"DMIMS100":  {Kind: PromoFlat, Amount: 100},
			"WARDHA200": {Kind: PromoFlat, Amount: 200},
			"EXAMREADY": {Kind: PromoPercent, BasisPoints: 500},
		},
	}
}

// LoadRateTable reads a JSON rate table. An empty path yields DefaultRates.
func LoadRateTable(path string) (RateTable, error) {
	if path == "" {
		return DefaultRates(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RateTable{}, fmt.Errorf("read rate table: %w", err)
	}
	var rt RateTable
	if err := json.Unmarshal(data, &rt); err != nil {
		return RateTable{}, fmt.Errorf("parse rate table: %w", err)
	}
	promos := make(map[string]PromoRule, len(rt.Promos))
	for code, rule := range rt.Promos {
		promos[NormalizePromoCode(code)] = rule
	}
	rt.Promos = promos
	if err := rt.Validate(); err != nil {
		return RateTable{}, err
	}
	return rt, nil
}

func (r RateTable) Validate() error {
	if strings.TrimSpace(r.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidRates)
	}
	prices := map[string]int64{
		"with_driver.local.full":                          r.WithDriver.Local.Full,
		"with_driver.local.two_point":                     r.WithDriver.Local.TwoPoint,
		"with_driver.airport.drop":                        r.WithDriver.Airport.Drop,
		"with_driver.airport.pickup":                      r.WithDriver.Airport.Pickup,
		"with_driver.outstation.min_km_per_day":           r.WithDriver.Outstation.MinKmPerDay,
		"with_driver.outstation.rate_per_km":              r.WithDriver.Outstation.RatePerKm,
		"with_driver.outstation.driver_allowance_per_day": r.WithDriver.Outstation.DriverAllowancePerDay,
		"with_driver.hangout.cafe":                        r.WithDriver.Hangout.Cafe,
		"with_driver.hangout.dam":                         r.WithDriver.Hangout.Dam,
		"self_drive.daily_rate":                           r.SelfDrive.DailyRate,
		"self_drive.twelve_hour_rate":                     r.SelfDrive.TwelveHourRate,
		"self_drive.hangout.cafe":                         r.SelfDrive.Hangout.Cafe,
		"self_drive.hangout.dam":                          r.SelfDrive.Hangout.Dam,
	}
	for name, v := range prices {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidRates, name)
		}
	}
	if r.WithDriver.Outstation.NightFlatCharge < 0 || r.SelfDrive.IncludedKm < 0 ||
		r.SelfDrive.ExcessRatePerKm < 0 || r.SelfDrive.SecurityDeposit < 0 {
		return fmt.Errorf("%w: negative surcharge or allowance", ErrInvalidRates)
	}
	if r.SurgeMultiplier < 1 {
		return fmt.Errorf("%w: surge_multiplier must be >= 1", ErrInvalidRates)
	}
	for code, rule := range r.Promos {
		if code == "" || code != NormalizePromoCode(code) {
			return fmt.Errorf("%w: promo code %q must be upper-case and trimmed", ErrInvalidRates, code)
		}
		switch rule.Kind {
		case PromoFlat:
			if rule.Amount <= 0 {
				return fmt.Errorf("%w: promo %s needs a positive amount", ErrInvalidRates, code)
			}
		case PromoPercent:
			if rule.BasisPoints <= 0 || rule.BasisPoints > 10000 {
				return fmt.Errorf("%w: promo %s basis_points out of range", ErrInvalidRates, code)
			}
		default:
			return fmt.Errorf("%w: promo %s has unknown kind %q", ErrInvalidRates, code, rule.Kind)
		}
	}
	return nil
}

func (r RateTable) LocalPrice(p NagpurPackage) (int64, error) {
	switch p {
	case NagpurFull:
		return r.WithDriver.Local.Full, nil
	case NagpurTwoPoint:
		return r.WithDriver.Local.TwoPoint, nil
	}
	return 0, fmt.Errorf("%w: nagpur package %q", ErrUnknownSelection, p)
}

func (r RateTable) AirportPrice(m AirportMode) (int64, error) {
	switch m {
	case AirportDrop:
		return r.WithDriver.Airport.Drop, nil
	case AirportPickup:
		return r.WithDriver.Airport.Pickup, nil
	}
	return 0, fmt.Errorf("%w: airport mode %q", ErrUnknownSelection, m)
}

func (r RateTable) HangoutPrice(mode Mode, p HangoutPackage) (int64, error) {
	var h HangoutRates
	switch mode {
	case ModeWithDriver:
		h = r.WithDriver.Hangout
	case ModeSelfDrive:
		h = r.SelfDrive.Hangout
	default:
		return 0, fmt.Errorf("%w: mode %q", ErrUnknownSelection, mode)
	}
	switch p {
	case HangoutCafe:
		return h.Cafe, nil
	case HangoutDam:
		return h.Dam, nil
	}
	return 0, fmt.Errorf("%w: hangout package %q", ErrUnknownSelection, p)
}

// SelfDrivePackagePrice is the rental part of a non-hangout self-drive quote, before excess km.
func (r RateTable) SelfDrivePackagePrice(p SelfDrivePackage, days int) (int64, error) {
	switch p {
	case SelfDriveTwelveHour:
		return r.SelfDrive.TwelveHourRate, nil
	case SelfDriveDaily:
		return int64(days) * r.SelfDrive.DailyRate, nil
	}
	return 0, fmt.Errorf("%w: self-drive package %q", ErrUnknownSelection, p)
}

func (r RateTable) Promo(code string) (PromoRule, bool) {
	rule, ok := r.Promos[NormalizePromoCode(code)]
	return rule, ok
}
