package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
)

func opportunityFixture(t *testing.T, buyPrice, sellPrice, notional string) *Opportunity {
	t.Helper()
	pair := pricingDomain.NewPair(asset.SOL, asset.USDC)
	best := pricingDomain.PricePair{
		Buy:  pricingDomain.PriceObservation{Venue: "Orca", Price: decimal.RequireFromString(buyPrice)},
		Sell: pricingDomain.PriceObservation{Venue: "Raydium", Price: decimal.RequireFromString(sellPrice)},
	}
	best.DiffPct = best.Sell.Price.Sub(best.Buy.Price).Div(best.Buy.Price).Mul(decimal.NewFromInt(100))
	return NewOpportunity(pair, best, CostBreakdown{}, sol(t, notional))
}

func TestComputeTradeDetails_RoundTripIdentity(t *testing.T) {
	// Equal prices, zero fees, zero network cost, zero slippage must
	// return exactly the input.
	opp := opportunityFixture(t, "100", "100", "0.1")
	params := CostParams{SlippageBasePct: decimal.Zero}

	d, err := ComputeTradeDetails(opp, nil, params)
	if err != nil {
		t.Fatalf("ComputeTradeDetails error: %v", err)
	}

	if !d.Final.Equal(d.Input) {
		t.Errorf("Final = %s, want exactly %s", d.Final, d.Input)
	}
	if !d.Profit.IsZero() || !d.ProfitPct.IsZero() {
		t.Errorf("Profit = %s (%s%%), want exactly 0", d.Profit, d.ProfitPct)
	}
}

func TestComputeTradeDetails_FeeOrder(t *testing.T) {
	// Fees come off the converted amount of each leg. With a 1% fee per
	// leg at equal prices 100, 0.1 SOL:
	//   leg1: 10 USDC -> 9.9 USDC after sell fee
	//   leg2: 0.099 SOL -> 0.09801 SOL after buy fee
	opp := opportunityFixture(t, "100", "100", "0.1")
	fees := map[string]decimal.Decimal{
		"Orca":    decimal.NewFromInt(1),
		"Raydium": decimal.NewFromInt(1),
	}
	params := CostParams{SlippageBasePct: decimal.Zero}

	d, err := ComputeTradeDetails(opp, fees, params)
	if err != nil {
		t.Fatalf("ComputeTradeDetails error: %v", err)
	}

	if !d.SellLegNet.Equal(decimal.RequireFromString("9.9")) {
		t.Errorf("SellLegNet = %s, want 9.9", d.SellLegNet)
	}
	if !d.BuyLegNet.Equal(decimal.RequireFromString("0.09801")) {
		t.Errorf("BuyLegNet = %s, want 0.09801", d.BuyLegNet)
	}
	if !d.Final.Equal(decimal.RequireFromString("0.09801")) {
		t.Errorf("Final = %s, want 0.09801", d.Final)
	}
}

func TestComputeTradeDetails_ProfitableGap(t *testing.T) {
	// 3% gap against realistic costs keeps the round trip profitable.
	opp := opportunityFixture(t, "100", "103", "0.1")
	fees := map[string]decimal.Decimal{
		"Orca":    decimal.RequireFromString("0.30"),
		"Raydium": decimal.RequireFromString("0.25"),
	}

	d, err := ComputeTradeDetails(opp, fees, testParams())
	if err != nil {
		t.Fatalf("ComputeTradeDetails error: %v", err)
	}

	if !d.Profit.IsPositive() {
		t.Fatalf("Profit = %s, want positive", d.Profit)
	}
	// Hand-computed: ~1.37% after both fees, 0.9% network, ~0.16% slippage
	lo := decimal.RequireFromString("1.3")
	hi := decimal.RequireFromString("1.45")
	if d.ProfitPct.LessThan(lo) || d.ProfitPct.GreaterThan(hi) {
		t.Errorf("ProfitPct = %s, want in [%s, %s]", d.ProfitPct, lo, hi)
	}
}

func TestComputeTradeDetails_ZeroNotional(t *testing.T) {
	opp := opportunityFixture(t, "100", "103", "0.1")
	opp.InputAmount = asset.Zero(asset.SOL)

	if _, err := ComputeTradeDetails(opp, nil, testParams()); err == nil {
		t.Fatal("expected error for zero notional")
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score string
		want  RiskLevel
	}{
		{"0", RiskLow},
		{"30", RiskLow},
		{"30.01", RiskMedium},
		{"50", RiskMedium},
		{"50.01", RiskHigh},
		{"70", RiskHigh},
		{"70.01", RiskVeryHigh},
		{"100", RiskVeryHigh},
	}

	for _, tt := range tests {
		if got := TierFor(decimal.RequireFromString(tt.score)); got != tt.want {
			t.Errorf("TierFor(%s) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
