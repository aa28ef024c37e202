// README: Quote derivation: maps a trip and rate table to a base price and ordered breakdown lines.
package pricing

import (
	"fmt"

	"wardharides/internal/types"
)

const (
	cafeIncludedKm = 40
	damIncludedKm  = 80
)

// Derive is pure: the same trip and rates always give the same base and lines.
// Unknown selections return ErrUnknownSelection instead of a zero price.
func Derive(trip TripRequest, rates RateTable) (int64, []Line, error) {
	trip = Normalize(trip)
	if trip.Days > MaxDays || trip.DistanceKm > MaxDistanceKm {
		return 0, nil, fmt.Errorf("%w: %d days, %d km exceeds %d days or %d km", ErrUnknownSelection, trip.Days, trip.DistanceKm, MaxDays, MaxDistanceKm)
	}
	switch trip.Mode {
	case ModeWithDriver:
		return deriveWithDriver(trip, rates)
	case ModeSelfDrive:
		return deriveSelfDrive(trip, rates)
	}
	return 0, nil, fmt.Errorf("%w: mode %q", ErrUnknownSelection, trip.Mode)
}

func deriveWithDriver(trip TripRequest, rates RateTable) (int64, []Line, error) {
	var (
		price int64
		lines []Line
		err   error
	)

	switch trip.TripType {
	case TripNagpur:
		if price, err = rates.LocalPrice(trip.NagpurPackage); err != nil {
			return 0, nil, err
		}
		if trip.NagpurPackage == NagpurFull {
			lines = append(lines,
				Line{Label: "Full Day Package", Value: types.Rupees(price)},
				Line{Label: "Includes", Value: "12 Hrs / Local Unlimited"},
			)
		} else {
			lines = append(lines,
				Line{Label: "2-Point Visit", Value: types.Rupees(price)},
				Line{Label: "Duration", Value: "6-7 Hours"},
			)
		}
		lines = append(lines, Line{Label: "Driver Allowance", Value: "Included"})

	case TripAirport:
		if price, err = rates.AirportPrice(trip.AirportMode); err != nil {
			return 0, nil, err
		}
		if trip.AirportMode == AirportDrop {
			lines = append(lines, Line{Label: "Wardha ➔ Nagpur Airport", Value: types.Rupees(price)})
		} else {
			lines = append(lines,
				Line{Label: "Nagpur Airport ➔ Wardha", Value: types.Rupees(price)},
				Line{Label: "Includes", Value: "Parking & Waiting"},
			)
		}

	case TripHangout:
		if price, err = rates.HangoutPrice(ModeWithDriver, trip.HangoutPackage); err != nil {
			return 0, nil, err
		}
		if trip.HangoutPackage == HangoutCafe {
			lines = append(lines,
				Line{Label: "Cafe Hopping (4 Hrs)", Value: types.Rupees(price)},
				Line{Label: "Distance", Value: fmt.Sprintf("%d km included", cafeIncludedKm)},
			)
		} else {
			lines = append(lines,
				Line{Label: "Dam Visit (6 Hrs)", Value: types.Rupees(price)},
				Line{Label: "Distance", Value: fmt.Sprintf("%d km included", damIncludedKm)},
			)
		}

	case TripOutstation:
		o := rates.WithDriver.Outstation
		days := int64(trip.Days)
		minKm := days * o.MinKmPerDay
		billableKm := max(int64(trip.DistanceKm), minKm)
		baseFare := billableKm * o.RatePerKm
		allowance := days * o.DriverAllowancePerDay
		price = baseFare + allowance
		lines = append(lines,
			Line{Label: fmt.Sprintf("Min Billing (%d km)", minKm), Value: "Active"},
			Line{Label: "Base Fare", Value: types.Rupees(baseFare)},
			Line{Label: "Driver Allowance", Value: types.Rupees(allowance)},
		)

	default:
		return 0, nil, fmt.Errorf("%w: trip type %q", ErrUnknownSelection, trip.TripType)
	}

	// Airport trips take the night charge too; only hangouts are exempt.
	if trip.NightDriving && trip.TripType != TripHangout {
		night := rates.WithDriver.Outstation.NightFlatCharge
		price += night
		lines = append(lines, Line{Label: "Night Charge (10PM-6AM)", Value: types.Rupees(night), Highlight: true})
	}
	return price, lines, nil
}

func deriveSelfDrive(trip TripRequest, rates RateTable) (int64, []Line, error) {
	if trip.TripType == TripHangout {
		price, err := rates.HangoutPrice(ModeSelfDrive, trip.HangoutPackage)
		if err != nil {
			return 0, nil, err
		}
		if trip.HangoutPackage == HangoutCafe {
			return price, []Line{
				{Label: "Cafe Solo (4 Hrs)", Value: types.Rupees(price)},
				{Label: "Limit", Value: fmt.Sprintf("%d km", cafeIncludedKm)},
			}, nil
		}
		return price, []Line{
			{Label: "Dam Solo (6 Hrs)", Value: types.Rupees(price)},
			{Label: "Limit", Value: fmt.Sprintf("%d km", damIncludedKm)},
		}, nil
	}
	if !trip.TripType.Valid() {
		return 0, nil, fmt.Errorf("%w: trip type %q", ErrUnknownSelection, trip.TripType)
	}

	sd := rates.SelfDrive
	rental, err := rates.SelfDrivePackagePrice(trip.SelfDrivePackage, trip.Days)
	if err != nil {
		return 0, nil, err
	}
	excessKm := max(0, int64(trip.DistanceKm)-sd.IncludedKm)
	excessCharge := excessKm * sd.ExcessRatePerKm

	var lines []Line
	if trip.SelfDrivePackage == SelfDriveTwelveHour {
		lines = append(lines, Line{Label: "12-Hr Rental Base", Value: types.Rupees(rental)})
	} else {
		lines = append(lines, Line{Label: fmt.Sprintf("Daily Rental (%d Days)", trip.Days), Value: types.Rupees(rental)})
	}
	lines = append(lines, Line{Label: "Included Distance", Value: fmt.Sprintf("%d km", sd.IncludedKm)})
	if excessKm > 0 {
		lines = append(lines, Line{Label: fmt.Sprintf("Excess Km (%d)", excessKm), Value: types.SignedRupees(excessCharge), Highlight: true})
	}
	return rental + excessCharge, lines, nil
}

// LuggageTight flags a cramped cabin. It only applies to chauffeured trips and never changes the price.
func LuggageTight(trip TripRequest) bool {
	if trip.Mode != ModeWithDriver {
		return false
	}
	p, l := trip.Passengers, trip.LuggageBags
	return (p == 5 && l > 1) || (p == 4 && l > 2) || l > 4
}
