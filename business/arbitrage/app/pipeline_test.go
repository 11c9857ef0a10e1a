package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	lendingDomain "github.com/solwatch/arbbot/business/lending/domain"
	pricingApp "github.com/solwatch/arbbot/business/pricing/app"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
)

// fakeVenueSource quotes a fixed price per venue label.
type fakeVenueSource struct {
	prices map[string]decimal.Decimal
}

func (f *fakeVenueSource) GetQuote(_ context.Context, tokenIn, tokenOut *asset.Asset, amountIn asset.Amount, opts pricingApp.QuoteOptions) (*pricingDomain.Quote, error) {
	venue := opts.OnlyVenues[0]
	price, ok := f.prices[venue]
	if !ok {
		return nil, errors.New("venue down")
	}

	out, err := asset.ParseDecimal(tokenOut, amountIn.ToDecimal().Mul(price))
	if err != nil {
		return nil, err
	}
	q := pricingDomain.NewQuote(tokenIn, tokenOut, amountIn, out, venue)
	return &q, nil
}

type fakeBalanceSource struct {
	balance asset.Amount
	err     error
}

func (f *fakeBalanceSource) Balance(context.Context, string) (asset.Amount, error) {
	if f.err != nil {
		return asset.Amount{}, f.err
	}
	return f.balance, nil
}

type recordingReporter struct {
	mu        sync.Mutex
	summaries []CycleSummary
}

func (r *recordingReporter) Start(context.Context) error { return nil }
func (r *recordingReporter) Stop() error                 { return nil }

func (r *recordingReporter) ReportCycle(summary CycleSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

func (r *recordingReporter) last(t *testing.T) CycleSummary {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.summaries) == 0 {
		t.Fatal("no cycle reported")
	}
	return r.summaries[len(r.summaries)-1]
}

func testPipeline(t *testing.T, mutate func(*PipelineDeps)) (*Pipeline, *recordingReporter) {
	t.Helper()

	reporter := &recordingReporter{}
	deps := PipelineDeps{
		Pricing: pricingApp.NewPricingService(&fakeVenueSource{prices: map[string]decimal.Decimal{
			"A": decimal.NewFromInt(100),
			"B": decimal.NewFromInt(103),
		}}, 0, testLogger()),
		Balances:  &fakeBalanceSource{balance: sol(t, "10")},
		Evaluator: NewEvaluator(testEvaluatorConfig(t), testLogger()),
		Sizer:     NewTradeSizer(nil, sol(t, "5"), testLogger()),
		Reporter:  reporter,
		Stats:     domain.NewBotStats(),
		Logger:    testLogger(),
	}
	if mutate != nil {
		mutate(&deps)
	}

	cfg := PipelineConfig{
		Pair:                 pricingDomain.NewPair(asset.SOL, asset.USDC),
		Venues:               []string{"A", "B"},
		Notional:             sol(t, "0.1"),
		WalletAddress:        "test-wallet",
		DefaultVolatilityPct: decimal.NewFromInt(2),
		PoolLiquidity:        decimal.NewFromInt(40),
	}
	return NewPipeline(deps, cfg), reporter
}

func TestPipeline_OpportunityCycle(t *testing.T) {
	pipeline, reporter := testPipeline(t, func(deps *PipelineDeps) {
		deps.Risk = NewRiskScorer(nil, testLogger())
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeOpportunity {
		t.Fatalf("outcome = %s, want %s (err %v)", summary.Outcome, OutcomeOpportunity, summary.Err)
	}
	opp := summary.Opportunity
	if opp == nil {
		t.Fatal("summary has no opportunity")
	}
	if opp.Risk == nil {
		t.Error("risk stage did not run")
	}
	if opp.RecommendedSize == nil {
		t.Error("sizer did not run")
	} else if want := sol(t, "1"); !opp.RecommendedSize.Equals(want) {
		t.Errorf("recommended size = %s, want %s", opp.RecommendedSize, want)
	}
	if opp.Market == nil || opp.Market.FeedLive {
		t.Error("market analysis should carry the configured volatility, not live feed data")
	}
	if summary.Stats.Opportunities != 1 || summary.Stats.CyclesRun != 1 {
		t.Errorf("stats = %+v, want 1 cycle and 1 opportunity", summary.Stats)
	}
	if got := reporter.last(t); got.Cycle != summary.Cycle {
		t.Errorf("reporter saw cycle %d, want %d", got.Cycle, summary.Cycle)
	}
}

func TestPipeline_BelowThresholdCycle(t *testing.T) {
	pipeline, _ := testPipeline(t, func(deps *PipelineDeps) {
		deps.Pricing = pricingApp.NewPricingService(&fakeVenueSource{prices: map[string]decimal.Decimal{
			"A": decimal.NewFromInt(100),
			"B": decimal.RequireFromString("100.5"),
		}}, 0, testLogger())
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeBelowThreshold {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeBelowThreshold)
	}
	if summary.Opportunity != nil {
		t.Error("below-threshold cycle must not carry an opportunity")
	}
	if summary.Stats.CyclesRun != 1 || summary.Stats.Opportunities != 0 {
		t.Errorf("stats = %+v, want 1 cycle and 0 opportunities", summary.Stats)
	}
}

func TestPipeline_ReentrancyGuard(t *testing.T) {
	pipeline, reporter := testPipeline(t, nil)
	pipeline.busy.Store(true)

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeSkippedBusy {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeSkippedBusy)
	}
	if summary.Stats.CyclesSkipped != 1 {
		t.Errorf("CyclesSkipped = %d, want 1", summary.Stats.CyclesSkipped)
	}
	if got := reporter.last(t); got.Outcome != OutcomeSkippedBusy {
		t.Errorf("reporter outcome = %s, want %s", got.Outcome, OutcomeSkippedBusy)
	}
	if !pipeline.busy.Load() {
		t.Error("skipped call must not clear the in-flight flag")
	}
}

func TestPipeline_MarginGate(t *testing.T) {
	position := lendingDomain.NewPosition(1_000_000_000, 2_000_000_000)
	pipeline, _ := testPipeline(t, func(deps *PipelineDeps) {
		deps.Position = &position
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeSkippedMargin {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeSkippedMargin)
	}
	if summary.Stats.CyclesSkipped != 1 {
		t.Errorf("CyclesSkipped = %d, want 1", summary.Stats.CyclesSkipped)
	}
}

func TestPipeline_HealthyPositionPasses(t *testing.T) {
	position := lendingDomain.NewPosition(2_000_000_000, 1_000_000_000)
	pipeline, _ := testPipeline(t, func(deps *PipelineDeps) {
		deps.Position = &position
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeOpportunity {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeOpportunity)
	}
}

func TestPipeline_BalanceFailureIsDataUnavailable(t *testing.T) {
	pipeline, _ := testPipeline(t, func(deps *PipelineDeps) {
		deps.Balances = &fakeBalanceSource{err: errors.New("rpc down")}
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeDataUnavailable {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeDataUnavailable)
	}
	if summary.Err == nil {
		t.Error("summary must carry the failure")
	}
}

func TestPipeline_SingleVenueIsInsufficientData(t *testing.T) {
	pipeline, _ := testPipeline(t, func(deps *PipelineDeps) {
		deps.Pricing = pricingApp.NewPricingService(&fakeVenueSource{prices: map[string]decimal.Decimal{
			"A": decimal.NewFromInt(100),
		}}, 0, testLogger())
	})

	summary := pipeline.RunCycle(context.Background())

	if summary.Outcome != OutcomeInsufficientData {
		t.Fatalf("outcome = %s, want %s", summary.Outcome, OutcomeInsufficientData)
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	pipeline, reporter := testPipeline(t, nil)
	scheduler := NewScheduler(pipeline, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx) }()

	// Let at least the immediate first cycle run, then stop.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		reporter.mu.Lock()
		n := len(reporter.summaries)
		reporter.mu.Unlock()
		if n >= 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	reporter.last(t)
}
