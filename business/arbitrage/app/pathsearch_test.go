package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	pricingApp "github.com/solwatch/arbbot/business/pricing/app"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
)

// fakeHopSource quotes at fixed per-hop rates keyed by "FROM->TO".
type fakeHopSource struct {
	rates map[string]decimal.Decimal
	calls int
}

func (f *fakeHopSource) GetQuote(_ context.Context, tokenIn, tokenOut *asset.Asset, amountIn asset.Amount, _ pricingApp.QuoteOptions) (*pricingDomain.Quote, error) {
	f.calls++
	key := tokenIn.Symbol() + "->" + tokenOut.Symbol()
	rate, ok := f.rates[key]
	if !ok {
		return nil, fmt.Errorf("no route for %s", key)
	}

	out, err := asset.ParseDecimal(tokenOut, amountIn.ToDecimal().Mul(rate))
	if err != nil {
		return nil, err
	}
	q := pricingDomain.NewQuote(tokenIn, tokenOut, amountIn, out, "Test")
	return &q, nil
}

func testPathSearch(t *testing.T, quotes pricingApp.QuoteSource, advisor *fakeAdvisor) *PathSearch {
	t.Helper()
	cfg := PathSearchConfig{StartSymbol: "SOL", MaxHops: 2}
	if advisor == nil {
		return NewPathSearch(quotes, asset.DefaultRegistry(), nil, cfg, testLogger())
	}
	return NewPathSearch(quotes, asset.DefaultRegistry(), advisor, cfg, testLogger())
}

func TestPathSearch_RanksByHandComputedProfit(t *testing.T) {
	// SOL->USDC->SOL at 100 and 0.0102 yields +2%; the USDT cycle at
	// 100 and 0.0099 yields -1%; the JUP cycle has no route at all.
	quotes := &fakeHopSource{rates: map[string]decimal.Decimal{
		"SOL->USDC": decimal.NewFromInt(100),
		"USDC->SOL": decimal.RequireFromString("0.0102"),
		"SOL->USDT": decimal.NewFromInt(100),
		"USDT->SOL": decimal.RequireFromString("0.0099"),
	}}
	search := testPathSearch(t, quotes, nil)

	candidates, err := search.FindArbitragePaths(context.Background(), sol(t, "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// MaxHops 2 admits only the three two-hop fallback cycles.
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	first := candidates[0]
	if first.String() != "SOL -> USDC -> SOL" || !first.Evaluated {
		t.Fatalf("top candidate = %s (evaluated %v), want evaluated USDC cycle",
			first.String(), first.Evaluated)
	}
	if want := decimal.NewFromInt(2); !first.ProfitPct.Equal(want) {
		t.Errorf("top profit = %s, want %s", first.ProfitPct, want)
	}

	second := candidates[1]
	if second.String() != "SOL -> USDT -> SOL" || !second.Evaluated {
		t.Fatalf("second candidate = %s, want evaluated USDT cycle", second.String())
	}
	if want := decimal.NewFromInt(-1); !second.ProfitPct.Equal(want) {
		t.Errorf("second profit = %s, want %s", second.ProfitPct, want)
	}

	last := candidates[2]
	if last.Evaluated {
		t.Fatal("candidate with a failed hop must not be evaluated")
	}
	if apperror.GetCode(last.Err) != apperror.CodePathHopFailed {
		t.Errorf("error code = %v, want %s", apperror.GetCode(last.Err), apperror.CodePathHopFailed)
	}
}

func TestPathSearch_ChainsHopAmounts(t *testing.T) {
	quotes := &fakeHopSource{rates: map[string]decimal.Decimal{
		"SOL->USDC": decimal.NewFromInt(100),
		"USDC->SOL": decimal.RequireFromString("0.0102"),
	}}
	advisor := &fakeAdvisor{reply: `[["SOL","USDC","SOL"]]`}
	search := testPathSearch(t, quotes, advisor)

	candidates, err := search.FindArbitragePaths(context.Background(), sol(t, "2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	steps := candidates[0].Steps
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	// 2 SOL -> 200 USDC -> 2.04 SOL
	if want := decimal.NewFromInt(200); !steps[0].OutAmount.ToDecimal().Equal(want) {
		t.Errorf("first hop out = %s, want %s", steps[0].OutAmount, want)
	}
	if !steps[1].InAmount.Equals(steps[0].OutAmount) {
		t.Error("second hop input must be first hop output")
	}
	if want := decimal.RequireFromString("2.04"); !steps[1].OutAmount.ToDecimal().Equal(want) {
		t.Errorf("final out = %s, want %s", steps[1].OutAmount, want)
	}
}

func TestPathSearch_AdvisoryFallsBackOnGarbage(t *testing.T) {
	quotes := &fakeHopSource{rates: map[string]decimal.Decimal{
		"SOL->USDC": decimal.NewFromInt(100),
		"USDC->SOL": decimal.RequireFromString("0.01"),
		"SOL->USDT": decimal.NewFromInt(100),
		"USDT->SOL": decimal.RequireFromString("0.01"),
		"SOL->JUP":  decimal.NewFromInt(250),
		"JUP->SOL":  decimal.RequireFromString("0.004"),
	}}
	advisor := &fakeAdvisor{reply: "try the usual pairs"}
	search := testPathSearch(t, quotes, advisor)

	candidates, err := search.FindArbitragePaths(context.Background(), sol(t, "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want the 3 two-hop fallback cycles", len(candidates))
	}
}

func TestPathSearch_RejectsInvalidSuggestions(t *testing.T) {
	quotes := &fakeHopSource{rates: map[string]decimal.Decimal{}}
	// Neither suggestion is a SOL-anchored cycle within the hop limit.
	advisor := &fakeAdvisor{reply: `[["USDC","SOL","USDC"],["SOL","USDC","JUP","SOL"]]`}
	search := testPathSearch(t, quotes, advisor)

	candidates, err := search.FindArbitragePaths(context.Background(), sol(t, "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("got %d candidates, want 0", len(candidates))
	}
	if quotes.calls != 0 {
		t.Errorf("quote source called %d times for invalid cycles", quotes.calls)
	}
}

func TestPathSearch_UnknownSymbolFailsHop(t *testing.T) {
	quotes := &fakeHopSource{rates: map[string]decimal.Decimal{}}
	advisor := &fakeAdvisor{reply: `[["SOL","XYZ","SOL"]]`}
	search := testPathSearch(t, quotes, advisor)

	candidates, err := search.FindArbitragePaths(context.Background(), sol(t, "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Evaluated {
		t.Fatalf("want one unevaluated candidate, got %+v", candidates)
	}
	if apperror.GetCode(candidates[0].Err) != apperror.CodePathHopFailed {
		t.Errorf("error code = %v, want %s", apperror.GetCode(candidates[0].Err), apperror.CodePathHopFailed)
	}
}
