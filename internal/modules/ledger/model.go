// README: Profit simulation inputs, results, presets and persisted ledger entries.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSimulation = errors.New("invalid simulation input")
	ErrUnavailable       = errors.New("ledger storage not configured")
)

const (
	DefaultMileage   = 18.0
	DefaultFuelPrice = 96.0
)

type SimulationInput struct {
	TripType     string  `json:"trip_type"`
	DistanceKm   float64 `json:"distance_km"`
	Mileage      float64 `json:"mileage"`
	FuelPrice    float64 `json:"fuel_price"`
	Toll         int64   `json:"toll"`
	OtherExpense int64   `json:"other_expense"`
	Revenue      int64   `json:"revenue"`
}

type Simulation struct {
	SimulationInput
	FuelCost  int64 `json:"fuel_cost"`
	Expense   int64 `json:"expense"`
	Profit    int64 `json:"profit"`
	MarginPct int64 `json:"margin_pct"`
}

type Entry struct {
	ID uuid.UUID `json:"id"`
	Simulation
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type Summary struct {
	Trips   int64 `json:"trips"`
	Revenue int64 `json:"revenue"`
	Expense int64 `json:"expense"`
	Profit  int64 `json:"profit"`
}

type Preset struct {
	DistanceKm float64
	Toll       int64
	Revenue    int64
}

// Presets are typical runs from Wardha; "local" is an in-town hangout.
var Presets = map[string]Preset{
	"nagpur":  {DistanceKm: 160, Toll: 150, Revenue: 3500},
	"airport": {DistanceKm: 150, Toll: 200, Revenue: 2200},
	"local":   {DistanceKm: 40, Toll: 0, Revenue: 1200},
}

type Store interface {
	Save(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Clear(ctx context.Context) (int64, error)
	Summary(ctx context.Context) (Summary, error)
}
