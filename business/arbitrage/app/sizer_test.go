package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	"github.com/solwatch/arbbot/internal/asset"
)

func sizerFixture(t *testing.T, netProfit, priceDiff string) *domain.Opportunity {
	t.Helper()
	return &domain.Opportunity{
		ID:           "test",
		InputAmount:  sol(t, "0.1"),
		PriceDiffPct: decimal.RequireFromString(priceDiff),
		NetProfitPct: decimal.RequireFromString(netProfit),
	}
}

func TestTradeSizer_HeuristicTiers(t *testing.T) {
	tests := []struct {
		name      string
		netProfit string
		want      string
	}{
		// balance 10 SOL, default = 1 SOL
		{"default tier", "1.0", "1"},
		{"moderate tier min(1.5, 1.5)", "2.0", "1.5"},
		{"aggressive tier min(2.5, 2.5)", "4.0", "2.5"},
		{"boundary 1.5 stays default", "1.5", "1"},
		{"boundary 3 stays moderate", "3.0", "1.5"},
	}

	sizer := NewTradeSizer(nil, sol(t, "5"), testLogger())
	balance := sol(t, "10")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sizer.Recommend(context.Background(),
				sizerFixture(t, tt.netProfit, "0.3"), balance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := sol(t, tt.want); !got.Equals(want) {
				t.Errorf("size = %s, want %s", got, want)
			}
		})
	}
}

func TestTradeSizer_CeilingBindsDefaultTier(t *testing.T) {
	sizer := NewTradeSizer(nil, sol(t, "0.5"), testLogger())

	got, err := sizer.Recommend(context.Background(),
		sizerFixture(t, "1.0", "0.3"), sol(t, "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := sol(t, "0.5"); !got.Equals(want) {
		t.Errorf("size = %s, want ceiling %s", got, want)
	}
}

func TestTradeSizer_AdvisoryOverride(t *testing.T) {
	advisor := &fakeAdvisor{reply: "2.0"}
	sizer := NewTradeSizer(advisor, sol(t, "5"), testLogger())

	got, err := sizer.Recommend(context.Background(),
		sizerFixture(t, "1.0", "1.2"), sol(t, "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := sol(t, "2"); !got.Equals(want) {
		t.Errorf("size = %s, want advisory %s", got, want)
	}
	if len(advisor.prompts) != 1 {
		t.Errorf("advisor consulted %d times, want 1", len(advisor.prompts))
	}
}

func TestTradeSizer_AdvisoryGatedOnSmallGap(t *testing.T) {
	advisor := &fakeAdvisor{reply: "9.9"}
	sizer := NewTradeSizer(advisor, sol(t, "5"), testLogger())

	got, err := sizer.Recommend(context.Background(),
		sizerFixture(t, "1.0", "0.4"), sol(t, "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := sol(t, "1"); !got.Equals(want) {
		t.Errorf("size = %s, want heuristic %s", got, want)
	}
	if len(advisor.prompts) != 0 {
		t.Error("advisor must not be consulted below the gap gate")
	}
}

func TestTradeSizer_AdvisoryFailuresFallBack(t *testing.T) {
	tests := []struct {
		name    string
		advisor *fakeAdvisor
	}{
		{"transport error", &fakeAdvisor{err: errors.New("timeout")}},
		{"no number in reply", &fakeAdvisor{reply: "use your judgement"}},
		{"non-positive suggestion", &fakeAdvisor{reply: "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizer := NewTradeSizer(tt.advisor, sol(t, "5"), testLogger())

			got, err := sizer.Recommend(context.Background(),
				sizerFixture(t, "1.0", "1.2"), sol(t, "10"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := sol(t, "1"); !got.Equals(want) {
				t.Errorf("size = %s, want heuristic %s", got, want)
			}
		})
	}
}

func TestTradeSizer_AdvisorySuggestionTruncatedToDecimals(t *testing.T) {
	// 1.25 with 10 decimal places still fits SOL's 9 after truncation.
	advisor := &fakeAdvisor{reply: "1.2500000001"}
	sizer := NewTradeSizer(advisor, sol(t, "5"), testLogger())

	got, err := sizer.Recommend(context.Background(),
		sizerFixture(t, "1.0", "1.2"), sol(t, "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := asset.NewAmountFromUint64(asset.SOL, 1_250_000_000); !got.Equals(want) {
		t.Errorf("size = %s, want %s", got, want)
	}
}
