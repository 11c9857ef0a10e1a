package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
)

func testParams() CostParams {
	return CostParams{
		NetworkFeeLamports: 900_000, // 0.0009 SOL
		SlippageBasePct:    decimal.RequireFromString("0.1"),
		VenueLiquidity: map[string]decimal.Decimal{
			"Orca":    decimal.RequireFromString("1.2"),
			"Raydium": decimal.RequireFromString("1.3"),
			"Phoenix": decimal.RequireFromString("0.8"),
		},
	}
}

func sol(t *testing.T, s string) asset.Amount {
	t.Helper()
	amt, err := asset.ParseString(asset.SOL, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return amt
}

func TestNetworkFeePct(t *testing.T) {
	params := testParams()

	tests := []struct {
		name     string
		notional string
		want     string
	}{
		{name: "tenth_sol", notional: "0.1", want: "0.9"},
		{name: "one_sol", notional: "1", want: "0.09"},
		{name: "ten_sol", notional: "10", want: "0.009"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.NetworkFeePct(sol(t, tt.notional))
			if err != nil {
				t.Fatalf("NetworkFeePct error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("NetworkFeePct(%s) = %s, want %s", tt.notional, got, tt.want)
			}
		})
	}
}

func TestNetworkFeePct_ZeroNotional(t *testing.T) {
	params := testParams()

	_, err := params.NetworkFeePct(asset.Zero(asset.SOL))
	if err == nil {
		t.Fatal("expected error for zero notional")
	}
	if code := apperror.GetCode(err); code != apperror.CodeZeroNotional {
		t.Errorf("code = %s, want ZERO_NOTIONAL", code)
	}
}

func TestSlippagePct_VolumeTiers(t *testing.T) {
	params := testParams()

	tests := []struct {
		name     string
		notional string
		want     string // unknown venue, liquidity factor 1.0
	}{
		{name: "at_one_unit", notional: "1", want: "0.1"},
		{name: "below_one_unit", notional: "0.5", want: "0.1"},
		{name: "mid_tier", notional: "5", want: "0.15"},
		{name: "at_ten_units", notional: "10", want: "0.15"},
		{name: "above_ten_units", notional: "11", want: "0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := params.SlippagePct(sol(t, tt.notional), "UnknownVenue")
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SlippagePct(%s) = %s, want %s", tt.notional, got, tt.want)
			}
		})
	}
}

func TestSlippagePct_MonotonicInNotional(t *testing.T) {
	params := testParams()
	notionals := []string{"0.1", "0.5", "1", "2", "9", "10", "15", "100"}

	prev := decimal.Zero
	for _, n := range notionals {
		got := params.SlippagePct(sol(t, n), "Orca")
		if got.LessThan(prev) {
			t.Fatalf("slippage decreased at %s SOL: %s < %s", n, got, prev)
		}
		prev = got
	}
}

func TestSlippagePct_LiquidityOrdering(t *testing.T) {
	params := testParams()
	amt := sol(t, "0.5")

	// Lower liquidity factor must mean higher slippage.
	phoenix := params.SlippagePct(amt, "Phoenix") // 0.8
	orca := params.SlippagePct(amt, "Orca")       // 1.2
	raydium := params.SlippagePct(amt, "Raydium") // 1.3

	if !phoenix.GreaterThan(orca) || !orca.GreaterThan(raydium) {
		t.Errorf("slippage ordering violated: Phoenix %s, Orca %s, Raydium %s",
			phoenix, orca, raydium)
	}
}

func BenchmarkSlippagePct(b *testing.B) {
	params := testParams()
	amt, _ := asset.ParseString(asset.SOL, "2.5")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		params.SlippagePct(amt, "Orca")
	}
}
