package pricing

import (
	"context"
	"errors"
	"testing"
)

func TestServiceQuote(t *testing.T) {
	svc, err := NewService(DefaultRates())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	tests := []struct {
		name      string
		trip      TripRequest
		surge     bool
		discount  *Discount
		wantFinal int64
		wantErr   error
	}{
		{
			name:      "Default trip",
			trip:      DefaultTrip(),
			wantFinal: 3500,
		},
		{
			name:      "Default trip with surge",
			trip:      DefaultTrip(),
			surge:     true,
			wantFinal: 4375,
		},
		{
			name:      "Sticky flat discount",
			trip:      trip(func(t *TripRequest) { t.TripType = TripHangout }),
			discount:  &Discount{Code: "DMIMS100", Amount: 100},
			wantFinal: 1100,
		},
		{
			name:    "Unknown selection",
			trip:    trip(func(t *TripRequest) { t.Mode = "bike" }),
			wantErr: ErrUnknownSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Quote(context.Background(), tt.trip, tt.surge, tt.discount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Quote() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}
			if q.FinalPrice != tt.wantFinal {
				t.Errorf("Quote() final = %d, want %d", q.FinalPrice, tt.wantFinal)
			}
		})
	}
}

func TestServicePreview(t *testing.T) {
	svc, err := NewService(DefaultRates())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	t.Run("valid percentage code", func(t *testing.T) {
		tr := trip(func(t *TripRequest) { t.TripType = TripAirport; t.PromoCode = "examready" })
		p, err := svc.Preview(ctx, tr, true)
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if p.PromoRejected {
			t.Fatal("expected EXAMREADY to be accepted")
		}
		if p.Quote.Discount != 110 || p.Quote.FinalPrice != 2640 {
			t.Errorf("Preview() discount=%d final=%d, want 110 and 2640", p.Quote.Discount, p.Quote.FinalPrice)
		}
	})

	t.Run("rejected code leaves quote untouched", func(t *testing.T) {
		tr := trip(func(t *TripRequest) { t.PromoCode = "ABC" })
		p, err := svc.Preview(ctx, tr, false)
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if !p.PromoRejected {
			t.Error("expected ABC to be rejected")
		}
		if p.Quote.Discount != 0 || p.Quote.FinalPrice != 3500 {
			t.Errorf("Preview() discount=%d final=%d, want 0 and 3500", p.Quote.Discount, p.Quote.FinalPrice)
		}
		for _, l := range p.Quote.Breakdown {
			if l.Label == "Promo Applied" {
				t.Errorf("unexpected promo line %+v", l)
			}
		}
	})

	t.Run("unknown selection with a code", func(t *testing.T) {
		tr := trip(func(t *TripRequest) { t.TripType = "moon"; t.PromoCode = "DMIMS100" })
		if _, err := svc.Preview(ctx, tr, false); !errors.Is(err, ErrUnknownSelection) {
			t.Fatalf("Preview() error = %v, want ErrUnknownSelection", err)
		}
	})
}

func TestNewServiceRejectsInvalidRates(t *testing.T) {
	rates := DefaultRates()
	rates.SurgeMultiplier = 0.5
	if _, err := NewService(rates); !errors.Is(err, ErrInvalidRates) {
		t.Fatalf("NewService() error = %v, want ErrInvalidRates", err)
	}
}
