// README: Adjustment layer: surge, promo discount, per-person share, and the derive→adjust pipeline.
package pricing

import (
	"fmt"
	"math"

	"wardharides/internal/types"
)

// Adjustment carries everything outside the trip that moves the price.
// Surge is passed in explicitly; the engine holds no switch of its own.
type Adjustment struct {
	SurgeActive bool
	Discount    *Discount
	Passengers  int
}

// SurgeAmount is the rounded surcharge added on top of base.
func SurgeAmount(base int64, multiplier float64) int64 {
	return int64(math.Round(float64(base) * (multiplier - 1)))
}

// PerPersonShare splits final across passengers rounding up; 0 for a solo rider.
func PerPersonShare(final int64, passengers int) int64 {
	if passengers <= 1 {
		return 0
	}
	p := int64(passengers)
	return (final + p - 1) / p
}

// ResolvePromo turns a code into an absolute discount against the pre-surge base.
// Unknown codes and rules that resolve to nothing are rejected.
func ResolvePromo(code string, base int64, rates RateTable) (Discount, error) {
	code = NormalizePromoCode(code)
	if code == "" {
		return Discount{}, ErrInvalidPromo
	}
	rule, ok := rates.Promo(code)
	if !ok {
		return Discount{}, fmt.Errorf("%w: %s", ErrInvalidPromo, code)
	}
	amount := rule.DiscountFor(base)
	if amount <= 0 {
		return Discount{}, fmt.Errorf("%w: %s gives no discount", ErrInvalidPromo, code)
	}
	return Discount{Code: code, Amount: amount}, nil
}

// Adjust applies surge then discount, in that order, appending their lines after
// the derived ones. The final price is floored at zero.
func Adjust(base int64, lines []Line, adj Adjustment, rates RateTable) Quote {
	breakdown := make([]Line, len(lines), len(lines)+2)
	copy(breakdown, lines)

	q := Quote{
		BasePrice:    base,
		Currency:     types.CurrencyINR,
		Passengers:   adj.Passengers,
		RatesVersion: rates.Version,
	}

	price := base
	if adj.SurgeActive {
		q.SurgeAmount = SurgeAmount(base, rates.SurgeMultiplier)
		price += q.SurgeAmount
		breakdown = append(breakdown, Line{Label: "High Demand Surge", Value: types.SignedRupees(q.SurgeAmount), Highlight: true})
	}

	if adj.Discount != nil && adj.Discount.Amount > 0 {
		q.Discount = adj.Discount.Amount
		price -= q.Discount
		breakdown = append(breakdown, Line{Label: "Promo Applied", Value: types.SignedRupees(-q.Discount), Highlight: true})
	}

	if price < 0 {
		price = 0
	}
	q.FinalPrice = price
	q.Breakdown = breakdown
	q.PerPersonShare = PerPersonShare(price, adj.Passengers)
	return q
}

// Compute runs the whole pipeline on a trip: normalise, derive, adjust.
func Compute(trip TripRequest, surgeActive bool, discount *Discount, rates RateTable) (Quote, error) {
	trip = Normalize(trip)
	base, lines, err := Derive(trip, rates)
	if err != nil {
		return Quote{}, err
	}
	q := Adjust(base, lines, Adjustment{SurgeActive: surgeActive, Discount: discount, Passengers: trip.Passengers}, rates)
	q.LuggageWarning = LuggageTight(trip)
	if trip.Mode == ModeSelfDrive {
		q.SecurityDeposit = rates.SelfDrive.SecurityDeposit
	}
	return q, nil
}
