// README: Trip profit simulation: fuel, expense, profit and margin from distance and costs.
package ledger

import (
	"fmt"
	"math"
	"strings"

	"wardharides/internal/types"
)

// PresetInput fills a simulation from a named preset with the default car.
func PresetInput(name string) (SimulationInput, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := Presets[name]
	if !ok {
		return SimulationInput{}, false
	}
	return SimulationInput{
		TripType:   name,
		DistanceKm: p.DistanceKm,
		Mileage:    DefaultMileage,
		FuelPrice:  DefaultFuelPrice,
		Toll:       p.Toll,
		Revenue:    p.Revenue,
	}, true
}

// FillFromPreset copies preset values into every field left at zero.
func FillFromPreset(in SimulationInput, name string) (SimulationInput, error) {
	p, ok := PresetInput(name)
	if !ok {
		return SimulationInput{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidSimulation, name)
	}
	if in.TripType == "" {
		in.TripType = p.TripType
	}
	if in.DistanceKm == 0 {
		in.DistanceKm = p.DistanceKm
	}
	if in.Mileage == 0 {
		in.Mileage = p.Mileage
	}
	if in.FuelPrice == 0 {
		in.FuelPrice = p.FuelPrice
	}
	if in.Toll == 0 {
		in.Toll = p.Toll
	}
	if in.Revenue == 0 {
		in.Revenue = p.Revenue
	}
	return in, nil
}

func Simulate(in SimulationInput) (Simulation, error) {
	if in.Mileage <= 0 {
		return Simulation{}, fmt.Errorf("%w: mileage must be positive", ErrInvalidSimulation)
	}
	if in.DistanceKm < 0 || in.FuelPrice < 0 || in.Toll < 0 || in.OtherExpense < 0 || in.Revenue < 0 {
		return Simulation{}, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidSimulation)
	}

	s := Simulation{SimulationInput: in}
	s.FuelCost = roundHalfUp(in.DistanceKm / in.Mileage * in.FuelPrice)
	s.Expense = s.FuelCost + in.Toll + in.OtherExpense
	s.Profit = in.Revenue - s.Expense
	if in.Revenue > 0 {
		s.MarginPct = roundHalfUp(float64(s.Profit) / float64(in.Revenue) * 100)
	}
	return s, nil
}

// Details is the one-line cost summary kept with a ledger entry.
func (s Simulation) Details() string {
	return fmt.Sprintf("Fuel: %s, Toll: %s", types.Rupees(s.FuelCost), types.Rupees(s.Toll))
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
