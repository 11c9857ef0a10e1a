package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func obs(venue, price string) PriceObservation {
	return PriceObservation{Venue: venue, Price: decimal.RequireFromString(price)}
}

func TestFindBestDivergentPair(t *testing.T) {
	tests := []struct {
		name         string
		observations []PriceObservation
		wantNil      bool
		wantBuy      string
		wantSell     string
		wantDiffMin  string // inclusive lower bound on DiffPct
		wantDiffMax  string // inclusive upper bound on DiffPct
	}{
		{
			name:         "empty_list",
			observations: nil,
			wantNil:      true,
		},
		{
			name:         "single_observation",
			observations: []PriceObservation{obs("Orca", "100")},
			wantNil:      true,
		},
		{
			name: "two_venues_simple",
			observations: []PriceObservation{
				obs("Orca", "100"),
				obs("Raydium", "101.5"),
			},
			wantBuy:     "Orca",
			wantSell:    "Raydium",
			wantDiffMin: "1.5",
			wantDiffMax: "1.5",
		},
		{
			name: "three_venues_widest_gap_wins",
			observations: []PriceObservation{
				obs("A", "100"),
				obs("B", "101"),
				obs("C", "99"),
			},
			// (B,C) gap is 2/99 ~ 2.02%, beats (A,C) at ~1.01% and (A,B) at 1%
			wantBuy:     "C",
			wantSell:    "B",
			wantDiffMin: "2.02",
			wantDiffMax: "2.03",
		},
		{
			name: "tie_keeps_first_pair_found",
			observations: []PriceObservation{
				obs("A", "100"),
				obs("B", "102"),
				obs("C", "100"),
				obs("D", "102"),
			},
			// (A,B), (A,D), (C,B), (C,D) all diverge 2%; (A,B) comes first
			wantBuy:     "A",
			wantSell:    "B",
			wantDiffMin: "2",
			wantDiffMax: "2",
		},
		{
			name: "equal_prices_zero_divergence",
			observations: []PriceObservation{
				obs("A", "150"),
				obs("B", "150"),
			},
			wantBuy:     "A",
			wantSell:    "B",
			wantDiffMin: "0",
			wantDiffMax: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindBestDivergentPair(tt.observations)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("FindBestDivergentPair = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("FindBestDivergentPair = nil, want pair")
			}

			if got.Buy.Venue != tt.wantBuy || got.Sell.Venue != tt.wantSell {
				t.Errorf("pair = buy %s / sell %s, want buy %s / sell %s",
					got.Buy.Venue, got.Sell.Venue, tt.wantBuy, tt.wantSell)
			}
			if got.Buy.Price.GreaterThan(got.Sell.Price) {
				t.Errorf("buy price %s above sell price %s", got.Buy.Price, got.Sell.Price)
			}

			lo := decimal.RequireFromString(tt.wantDiffMin)
			hi := decimal.RequireFromString(tt.wantDiffMax)
			if got.DiffPct.LessThan(lo) || got.DiffPct.GreaterThan(hi) {
				t.Errorf("DiffPct = %s, want in [%s, %s]", got.DiffPct, lo, hi)
			}
		})
	}
}

func TestFindBestDivergentPair_SkipsZeroPrices(t *testing.T) {
	observations := []PriceObservation{
		obs("Broken", "0"),
		obs("A", "100"),
		obs("B", "101"),
	}

	got := FindBestDivergentPair(observations)
	if got == nil {
		t.Fatal("expected a pair from the non-zero observations")
	}
	if got.Buy.Venue != "A" || got.Sell.Venue != "B" {
		t.Errorf("pair = buy %s / sell %s, want buy A / sell B", got.Buy.Venue, got.Sell.Venue)
	}
}

func BenchmarkFindBestDivergentPair(b *testing.B) {
	observations := []PriceObservation{
		obs("Orca", "100.12"),
		obs("Raydium", "100.55"),
		obs("Meteora", "99.87"),
		obs("Phoenix", "101.02"),
		obs("Lifinity", "100.31"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindBestDivergentPair(observations)
	}
}
