package pricing

import (
	"errors"
	"testing"
)

func trip(mutate func(*TripRequest)) TripRequest {
	t := DefaultTrip()
	if mutate != nil {
		mutate(&t)
	}
	return t
}

func TestDerive(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name      string
		trip      TripRequest
		wantBase  int64
		wantLines []Line
	}{
		{
			name:     "Nagpur full day",
			trip:     trip(nil),
			wantBase: 3500,
			wantLines: []Line{
				{Label: "Full Day Package", Value: "₹3500"},
				{Label: "Includes", Value: "12 Hrs / Local Unlimited"},
				{Label: "Driver Allowance", Value: "Included"},
			},
		},
		{
			name:     "Nagpur two point with night charge",
			trip:     trip(func(t *TripRequest) { t.NagpurPackage = NagpurTwoPoint; t.NightDriving = true }),
			wantBase: 2300 + 300,
			wantLines: []Line{
				{Label: "2-Point Visit", Value: "₹2300"},
				{Label: "Duration", Value: "6-7 Hours"},
				{Label: "Driver Allowance", Value: "Included"},
				{Label: "Night Charge (10PM-6AM)", Value: "₹300", Highlight: true},
			},
		},
		{
			name:     "Airport drop",
			trip:     trip(func(t *TripRequest) { t.TripType = TripAirport }),
			wantBase: 2200,
			wantLines: []Line{
				{Label: "Wardha ➔ Nagpur Airport", Value: "₹2200"},
			},
		},
		{
			// Airport trips are not exempt from the night charge.
			name:     "Airport pickup at night",
			trip:     trip(func(t *TripRequest) { t.TripType = TripAirport; t.AirportMode = AirportPickup; t.NightDriving = true }),
			wantBase: 2300 + 300,
			wantLines: []Line{
				{Label: "Nagpur Airport ➔ Wardha", Value: "₹2300"},
				{Label: "Includes", Value: "Parking & Waiting"},
				{Label: "Night Charge (10PM-6AM)", Value: "₹300", Highlight: true},
			},
		},
		{
			name:     "Hangout cafe ignores night flag",
			trip:     trip(func(t *TripRequest) { t.TripType = TripHangout; t.NightDriving = true }),
			wantBase: 1200,
			wantLines: []Line{
				{Label: "Cafe Hopping (4 Hrs)", Value: "₹1200"},
				{Label: "Distance", Value: "40 km included"},
			},
		},
		{
			name:     "Hangout dam",
			trip:     trip(func(t *TripRequest) { t.TripType = TripHangout; t.HangoutPackage = HangoutDam }),
			wantBase: 1800,
			wantLines: []Line{
				{Label: "Dam Visit (6 Hrs)", Value: "₹1800"},
				{Label: "Distance", Value: "80 km included"},
			},
		},
		{
			// minKm = 600, billable = 600, fare = 7200, allowance = 600
			name:     "Outstation below minimum billing",
			trip:     trip(func(t *TripRequest) { t.TripType = TripOutstation; t.Days = 2; t.DistanceKm = 100 }),
			wantBase: 7800,
			wantLines: []Line{
				{Label: "Min Billing (600 km)", Value: "Active"},
				{Label: "Base Fare", Value: "₹7200"},
				{Label: "Driver Allowance", Value: "₹600"},
			},
		},
		{
			// billable = 450 > 300, fare = 5400, allowance = 300, night = 300
			name:     "Outstation above minimum with night charge",
			trip:     trip(func(t *TripRequest) { t.TripType = TripOutstation; t.DistanceKm = 450; t.NightDriving = true }),
			wantBase: 6000,
			wantLines: []Line{
				{Label: "Min Billing (300 km)", Value: "Active"},
				{Label: "Base Fare", Value: "₹5400"},
				{Label: "Driver Allowance", Value: "₹300"},
				{Label: "Night Charge (10PM-6AM)", Value: "₹300", Highlight: true},
			},
		},
		{
			name:     "Self drive cafe solo",
			trip:     trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.TripType = TripHangout }),
			wantBase: 800,
			wantLines: []Line{
				{Label: "Cafe Solo (4 Hrs)", Value: "₹800"},
				{Label: "Limit", Value: "40 km"},
			},
		},
		{
			name:     "Self drive dam solo",
			trip:     trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.TripType = TripHangout; t.HangoutPackage = HangoutDam }),
			wantBase: 1200,
			wantLines: []Line{
				{Label: "Dam Solo (6 Hrs)", Value: "₹1200"},
				{Label: "Limit", Value: "80 km"},
			},
		},
		{
			// excess = 50 km * 5 = 250, rental = 3 * 2500
			name:     "Self drive daily with excess",
			trip:     trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.Days = 3; t.DistanceKm = 300 }),
			wantBase: 7750,
			wantLines: []Line{
				{Label: "Daily Rental (3 Days)", Value: "₹7500"},
				{Label: "Included Distance", Value: "250 km"},
				{Label: "Excess Km (50)", Value: "+₹250", Highlight: true},
			},
		},
		{
			name: "Self drive twelve hour within limit",
			trip: trip(func(t *TripRequest) {
				t.Mode = ModeSelfDrive
				t.TripType = TripOutstation
				t.SelfDrivePackage = SelfDriveTwelveHour
				t.DistanceKm = 200
			}),
			wantBase: 1500,
			wantLines: []Line{
				{Label: "12-Hr Rental Base", Value: "₹1500"},
				{Label: "Included Distance", Value: "250 km"},
			},
		},
		{
			name:     "Self drive airport falls back to rental and ignores night flag",
			trip:     trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.TripType = TripAirport; t.NightDriving = true }),
			wantBase: 2500,
			wantLines: []Line{
				{Label: "Daily Rental (1 Days)", Value: "₹2500"},
				{Label: "Included Distance", Value: "250 km"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, lines, err := Derive(tt.trip, rates)
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if base != tt.wantBase {
				t.Errorf("Derive() base = %d, want %d", base, tt.wantBase)
			}
			if len(lines) == 0 {
				t.Fatal("Derive() returned no breakdown lines")
			}
			if len(lines) != len(tt.wantLines) {
				t.Fatalf("Derive() lines = %+v, want %+v", lines, tt.wantLines)
			}
			for i := range lines {
				if lines[i] != tt.wantLines[i] {
					t.Errorf("line %d = %+v, want %+v", i, lines[i], tt.wantLines[i])
				}
			}
		})
	}
}

func TestDeriveUnknownSelection(t *testing.T) {
	rates := DefaultRates()
	tests := []struct {
		name string
		trip TripRequest
	}{
		{"missing mode", trip(func(t *TripRequest) { t.Mode = "" })},
		{"unknown trip type with driver", trip(func(t *TripRequest) { t.TripType = "moon" })},
		{"unknown trip type self drive", trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.TripType = "moon" })},
		{"missing nagpur package", trip(func(t *TripRequest) { t.NagpurPackage = "" })},
		{"unknown airport mode", trip(func(t *TripRequest) { t.TripType = TripAirport; t.AirportMode = "both" })},
		{"unknown hangout package", trip(func(t *TripRequest) { t.TripType = TripHangout; t.HangoutPackage = "mall" })},
		{"unknown self drive package", trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.SelfDrivePackage = "weekly" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, lines, err := Derive(tt.trip, rates)
			if !errors.Is(err, ErrUnknownSelection) {
				t.Fatalf("Derive() error = %v, want ErrUnknownSelection", err)
			}
			if base != 0 || lines != nil {
				t.Errorf("Derive() = (%d, %v), want zero values alongside the error", base, lines)
			}
		})
	}
}

func TestLuggageTight(t *testing.T) {
	tests := []struct {
		mode       Mode
		passengers int
		luggage    int
		want       bool
	}{
		{ModeWithDriver, 5, 2, true},
		{ModeWithDriver, 5, 1, false},
		{ModeWithDriver, 4, 3, true},
		{ModeWithDriver, 4, 2, false},
		{ModeWithDriver, 3, 4, false},
		{ModeWithDriver, 2, 5, true},
		{ModeSelfDrive, 5, 6, false},
	}
	for _, tt := range tests {
		got := LuggageTight(TripRequest{Mode: tt.mode, Passengers: tt.passengers, LuggageBags: tt.luggage})
		if got != tt.want {
			t.Errorf("LuggageTight(%s, p=%d, l=%d) = %v, want %v", tt.mode, tt.passengers, tt.luggage, got, tt.want)
		}
	}
}

func TestDeriveRejectsOversizedTrips(t *testing.T) {
	rates := DefaultRates()
	tests := []struct {
		name string
		trip TripRequest
	}{
		{"outstation distance near int64 range", trip(func(t *TripRequest) { t.TripType = TripOutstation; t.DistanceKm = Km(ParseKm("922337203685477580")) })},
		{"outstation days", trip(func(t *TripRequest) { t.TripType = TripOutstation; t.Days = 1 << 60 })},
		{"self drive days", trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.Days = 1 << 62 })},
		{"self drive excess distance", trip(func(t *TripRequest) { t.Mode = ModeSelfDrive; t.DistanceKm = MaxDistanceKm + 1 })},
		{"date range longer than a year", trip(func(t *TripRequest) {
			t.TripType = TripOutstation
			t.StartDate = "2024-01-01"
			t.EndDate = "2025-06-01"
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, lines, err := Derive(tt.trip, rates)
			if !errors.Is(err, ErrUnknownSelection) {
				t.Fatalf("Derive() = (%d, %v, %v), want ErrUnknownSelection", base, lines, err)
			}
			if _, err := Compute(tt.trip, true, nil, rates); !errors.Is(err, ErrUnknownSelection) {
				t.Fatalf("Compute() error = %v, want ErrUnknownSelection", err)
			}
		})
	}
}

func TestDeriveAtLimits(t *testing.T) {
	rates := DefaultRates()

	// 365 days: min 109500 km > 100000, fare 1314000, allowance 109500
	base, _, err := Derive(trip(func(t *TripRequest) {
		t.TripType = TripOutstation
		t.Days = MaxDays
		t.DistanceKm = MaxDistanceKm
	}), rates)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if base != 1314000+109500 {
		t.Errorf("Derive() base = %d, want %d", base, 1314000+109500)
	}

	// 365 * 2500 rental, (100000 - 250) * 5 excess
	base, _, err = Derive(trip(func(t *TripRequest) {
		t.Mode = ModeSelfDrive
		t.Days = MaxDays
		t.DistanceKm = MaxDistanceKm
	}), rates)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if base != 912500+498750 {
		t.Errorf("Derive() base = %d, want %d", base, 912500+498750)
	}
}
