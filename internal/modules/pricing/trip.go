// README: Trip normalisation: numeric coercion, clamping and day count from a date range.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	MinPassengers = 1
	MaxPassengers = 5
	MinLuggage    = 0
	MaxLuggage    = 6
	MaxDays       = 365
	MaxDistanceKm = 100000

	dateLayout = "2006-01-02"
)

// ParseKm reads the leading integer of s. Non-numeric, negative or overflowing input gives 0.
func ParseKm(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DaysInRange counts calendar days from start to end inclusive. An end before
// start collapses onto start, so the result is never below 1.
func DaysInRange(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Normalize applies the silent recoveries: clamps counts, derives days from
// dates when both are set and valid, and canonicalises the promo code.
func Normalize(trip TripRequest) TripRequest {
	if trip.StartDate != "" && trip.EndDate != "" {
		start, errStart := time.Parse(dateLayout, trip.StartDate)
		end, errEnd := time.Parse(dateLayout, trip.EndDate)
		if errStart == nil && errEnd == nil {
			if end.Before(start) {
				trip.EndDate = trip.StartDate
				end = start
			}
			trip.Days = DaysInRange(start, end)
		}
	}
	if trip.Days < 1 {
		trip.Days = 1
	}
	if trip.DistanceKm < 0 {
		trip.DistanceKm = 0
	}
	trip.Passengers = clamp(trip.Passengers, MinPassengers, MaxPassengers)
	trip.LuggageBags = clamp(trip.LuggageBags, MinLuggage, MaxLuggage)
	trip.PromoCode = NormalizePromoCode(trip.PromoCode)
	return trip
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
