package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	lendingDomain "github.com/solwatch/arbbot/business/lending/domain"
	pricingApp "github.com/solwatch/arbbot/business/pricing/app"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

// PipelineConfig fixes the scan target and the market assumptions that
// stay constant across cycles.
type PipelineConfig struct {
	Pair          pricingDomain.Pair
	Venues        []string
	Notional      asset.Amount // probe size for venue quotes
	WalletAddress string

	// DefaultVolatilityPct stands in for feed volatility when the
	// reference feed is disabled or not yet warm.
	DefaultVolatilityPct decimal.Decimal

	// PoolLiquidity is the assumed per-venue depth used by risk scoring.
	PoolLiquidity decimal.Decimal
}

// Pipeline runs one full scan cycle: balance, observations, evaluation,
// then the optional risk, sizing and path stages. A nil risk scorer,
// path search, position or snapshot writer disables that stage.
type Pipeline struct {
	pricing   *pricingApp.PricingService
	balances  pricingApp.BalanceSource
	feed      pricingApp.ReferenceFeed
	evaluator *Evaluator
	risk      *RiskScorer
	sizer     *TradeSizer
	paths     *PathSearch
	reporter  Reporter
	snapshots SnapshotWriter
	stats     *domain.BotStats
	position  *lendingDomain.Position
	config    PipelineConfig
	logger    logger.LoggerInterface

	busy  atomic.Bool
	cycle atomic.Int64
}

// PipelineDeps bundles the pipeline's collaborators for construction.
type PipelineDeps struct {
	Pricing   *pricingApp.PricingService
	Balances  pricingApp.BalanceSource
	Feed      pricingApp.ReferenceFeed
	Evaluator *Evaluator
	Risk      *RiskScorer
	Sizer     *TradeSizer
	Paths     *PathSearch
	Reporter  Reporter
	Snapshots SnapshotWriter
	Stats     *domain.BotStats
	Position  *lendingDomain.Position
	Logger    logger.LoggerInterface
}

// NewPipeline creates a Pipeline.
func NewPipeline(deps PipelineDeps, cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		pricing:   deps.Pricing,
		balances:  deps.Balances,
		feed:      deps.Feed,
		evaluator: deps.Evaluator,
		risk:      deps.Risk,
		sizer:     deps.Sizer,
		paths:     deps.Paths,
		reporter:  deps.Reporter,
		snapshots: deps.Snapshots,
		stats:     deps.Stats,
		position:  deps.Position,
		config:    cfg,
		logger:    deps.Logger,
	}
}

// RunCycle executes one scan cycle and reports its summary. Overlapping
// calls are collapsed: if a cycle is still in flight the new call is
// recorded as skipped and returns immediately.
func (p *Pipeline) RunCycle(ctx context.Context) CycleSummary {
	if !p.busy.CompareAndSwap(false, true) {
		p.stats.RecordSkip()
		summary := p.newSummary(OutcomeSkippedBusy)
		p.logger.Warn(ctx, "scan cycle still in flight, skipping", "cycle", summary.Cycle)
		p.finish(summary)
		return summary
	}
	defer p.busy.Store(false)

	summary := p.runCycle(ctx)
	p.finish(summary)
	return summary
}

func (p *Pipeline) runCycle(ctx context.Context) CycleSummary {
	if p.position != nil && p.position.IsLiquidatable() {
		p.stats.RecordSkip()
		summary := p.newSummary(OutcomeSkippedMargin)
		p.logger.Warn(ctx, "margin position at risk, skipping cycle",
			"health_factor", p.position.HealthFactor().StringFixed(4))
		return summary
	}

	balance, err := p.balances.Balance(ctx, p.config.WalletAddress)
	if err != nil {
		p.stats.RecordCycle(decimal.Zero, false)
		summary := p.newSummary(OutcomeDataUnavailable)
		summary.Err = err
		p.logger.Error(ctx, "balance lookup failed", "error", err)
		return summary
	}

	observations, err := p.pricing.CollectObservations(ctx, p.config.Pair, p.config.Notional, p.config.Venues)
	if err != nil {
		p.stats.RecordCycle(decimal.Zero, false)
		summary := p.newSummary(OutcomeDataUnavailable)
		summary.Err = err
		p.logger.Error(ctx, "observation collection failed", "error", err)
		return summary
	}

	opp, err := p.evaluator.Evaluate(ctx, p.config.Pair, observations, balance, p.config.Notional)
	if err != nil {
		p.stats.RecordCycle(decimal.Zero, false)
		summary := p.newSummary(p.outcomeForError(err))
		summary.Observations = observations
		summary.Err = err
		p.logger.Warn(ctx, "cycle not evaluable", "error", err)
		return summary
	}

	market := p.marketAnalysis()

	if opp == nil {
		p.stats.RecordCycle(decimal.Zero, false)
		summary := p.newSummary(OutcomeBelowThreshold)
		summary.Observations = observations
		summary.Market = &market
		return summary
	}

	opp.Market = &market

	if p.risk != nil {
		assessment := p.risk.Analyze(ctx, opp, MarketContext{
			VolatilityPct: market.VolatilityPct,
			PoolLiquidity: p.config.PoolLiquidity,
		})
		opp.Risk = &assessment
		p.stats.RecordRiskLevel(assessment.Level)
	}

	size, err := p.sizer.Recommend(ctx, opp, balance)
	if err != nil {
		p.logger.Error(ctx, "trade sizing failed", "error", err)
	} else {
		opp.RecommendedSize = &size
	}

	if p.paths != nil {
		candidates, err := p.paths.FindArbitragePaths(ctx, p.config.Notional)
		if err != nil {
			p.logger.Warn(ctx, "path search interrupted", "error", err)
		}
		opp.AlternatePaths = candidates
	}

	p.stats.RecordCycle(opp.NetProfitPct, true)

	summary := p.newSummary(OutcomeOpportunity)
	summary.Observations = observations
	summary.Opportunity = opp
	summary.Market = &market
	return summary
}

// marketAnalysis prefers live feed data and falls back to the configured
// volatility assumption.
func (p *Pipeline) marketAnalysis() domain.MarketAnalysis {
	if p.feed != nil && p.feed.Connected() {
		return domain.MarketAnalysis{
			ReferenceMid:  p.feed.MidPrice(),
			VolatilityPct: p.feed.VolatilityPct(),
			FeedLive:      true,
		}
	}
	return domain.MarketAnalysis{
		VolatilityPct: p.config.DefaultVolatilityPct,
	}
}

func (p *Pipeline) outcomeForError(err error) CycleOutcome {
	if apperror.GetCode(err) == apperror.CodeInsufficientObservations {
		return OutcomeInsufficientData
	}
	return OutcomeDataUnavailable
}

func (p *Pipeline) newSummary(outcome CycleOutcome) CycleSummary {
	return CycleSummary{
		Cycle:     p.cycle.Add(1),
		Timestamp: time.Now(),
		Outcome:   outcome,
		Stats:     p.stats.Snapshot(),
	}
}

func (p *Pipeline) finish(summary CycleSummary) {
	summary.Stats = p.stats.Snapshot()
	p.reporter.ReportCycle(summary)

	if p.snapshots != nil {
		if err := p.snapshots.Write(summary); err != nil {
			p.logger.Warn(context.Background(), "cycle snapshot write failed",
				"cycle", summary.Cycle, "error", err)
		}
	}
}

// Scheduler drives the pipeline on a fixed interval. The timer rearms
// only after the cycle completes, so a slow cycle stretches the period
// instead of stacking cycles behind the reentrancy guard.
type Scheduler struct {
	pipeline *Pipeline
	interval time.Duration
	logger   logger.LoggerInterface
}

// NewScheduler creates a Scheduler.
func NewScheduler(pipeline *Pipeline, interval time.Duration, log logger.LoggerInterface) *Scheduler {
	return &Scheduler{pipeline: pipeline, interval: interval, logger: log}
}

// Run executes cycles until the context is canceled. The first cycle
// starts immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info(ctx, "scan scheduler started", "interval", s.interval.String())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "scan scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		s.pipeline.RunCycle(ctx)

		if ctx.Err() != nil {
			s.logger.Info(ctx, "scan scheduler stopped")
			return ctx.Err()
		}
		timer.Reset(s.interval)
	}
}
