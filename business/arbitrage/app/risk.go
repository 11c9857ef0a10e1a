package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	advisoryApp "github.com/solwatch/arbbot/business/advisory/app"
	advisoryDomain "github.com/solwatch/arbbot/business/advisory/domain"
	"github.com/solwatch/arbbot/business/arbitrage/domain"
	"github.com/solwatch/arbbot/internal/logger"
)

var (
	riskCeiling = decimal.NewFromInt(100)

	liquidityCoeff  = decimal.NewFromInt(25)
	volatilityCoeff = decimal.NewFromInt(20)
	executionBase   = decimal.NewFromInt(10)

	weightLiquidity  = decimal.RequireFromString("0.4")
	weightVolatility = decimal.RequireFromString("0.3")
	weightExecution  = decimal.RequireFromString("0.3")
)

// MarketContext is the ambient market data the scorer works against.
type MarketContext struct {
	// VolatilityPct is the recent reference-price volatility in percent.
	VolatilityPct decimal.Decimal

	// PoolLiquidity is the assumed depth of the venue pools in base
	// units. There is no real depth data behind it; it is an admitted
	// approximation and therefore configurable.
	PoolLiquidity decimal.Decimal
}

// RiskScorer composes liquidity, volatility and execution risk into one
// score and tier. When an advisor is present and returns a usable score,
// the advisory score replaces the local composite outright rather than
// being blended with it; revisit if the advisory scores prove noisy.
type RiskScorer struct {
	advisor advisoryApp.Advisor // nil disables the advisory override
	logger  logger.LoggerInterface
}

// NewRiskScorer creates a RiskScorer.
func NewRiskScorer(advisor advisoryApp.Advisor, log logger.LoggerInterface) *RiskScorer {
	return &RiskScorer{advisor: advisor, logger: log}
}

// Analyze scores an opportunity. It never fails: a panic inside scoring
// degrades to the {50, unknown} fallback so a risk bug cannot block the
// pipeline.
func (r *RiskScorer) Analyze(ctx context.Context, opp *domain.Opportunity, mctx MarketContext) (assessment domain.RiskAssessment) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(ctx, "risk scoring panicked, using fallback",
				"opportunity", opp.ID, "panic", rec)
			assessment = domain.FallbackAssessment()
		}
	}()

	details := domain.RiskDetails{
		LiquidityRisk:  r.liquidityRisk(opp, mctx),
		VolatilityRisk: r.volatilityRisk(mctx),
		ExecutionRisk:  r.executionRisk(opp),
	}

	score := details.LiquidityRisk.Mul(weightLiquidity).
		Add(details.VolatilityRisk.Mul(weightVolatility)).
		Add(details.ExecutionRisk.Mul(weightExecution))

	assessment = domain.RiskAssessment{
		Score:   score,
		Details: details,
	}

	if r.advisor != nil {
		if advice := r.consultAdvisor(ctx, opp, details, score); advice != nil {
			assessment.Score = advice.RiskScore
			assessment.Recommendation = advice.Recommendation
			assessment.AdvisoryUsed = true
		}
	}

	assessment.Level = domain.TierFor(assessment.Score)
	if assessment.Recommendation == "" {
		assessment.Recommendation = defaultRecommendation(assessment.Level)
	}
	return assessment
}

// liquidityRisk grows with trade size relative to assumed pool depth.
func (r *RiskScorer) liquidityRisk(opp *domain.Opportunity, mctx MarketContext) decimal.Decimal {
	size := opp.InputAmount.ToDecimal()
	return clampRisk(size.Div(mctx.PoolLiquidity).Mul(liquidityCoeff))
}

func (r *RiskScorer) volatilityRisk(mctx MarketContext) decimal.Decimal {
	return clampRisk(mctx.VolatilityPct.Mul(volatilityCoeff))
}

// executionRisk grows as estimated slippage eats into the price gap.
// A zero gap means the edge is already gone: maximal risk, not a
// division by zero.
func (r *RiskScorer) executionRisk(opp *domain.Opportunity) decimal.Decimal {
	if opp.PriceDiffPct.IsZero() {
		return riskCeiling
	}
	ratio := opp.Costs.Slippage.Div(opp.PriceDiffPct)
	return clampRisk(executionBase.Add(ratio.Mul(riskCeiling)))
}

func (r *RiskScorer) consultAdvisor(ctx context.Context, opp *domain.Opportunity, details domain.RiskDetails, composite decimal.Decimal) *advisoryDomain.RiskAdvice {
	prompt := fmt.Sprintf(
		"Assess the execution risk of this arbitrage opportunity and answer with JSON "+
			"{\"riskScore\": 0-100, \"riskFactors\": [...], \"recommendation\": \"...\", \"reasoning\": \"...\"}.\n"+
			"Buy %s at %s on %s, sell at %s on %s. Price gap %s%%, estimated costs %s%% "+
			"(slippage %s%%), net %s%%. Local sub-scores: liquidity %s, volatility %s, execution %s "+
			"(composite %s).",
		opp.InputAmount, opp.BuyPrice, opp.BuyVenue, opp.SellPrice, opp.SellVenue,
		opp.PriceDiffPct.StringFixed(4), opp.Costs.Total.StringFixed(4),
		opp.Costs.Slippage.StringFixed(4), opp.NetProfitPct.StringFixed(4),
		details.LiquidityRisk.StringFixed(2), details.VolatilityRisk.StringFixed(2),
		details.ExecutionRisk.StringFixed(2), composite.StringFixed(2))

	text, err := r.advisor.Advise(ctx, prompt)
	if err != nil {
		r.logger.Debug(ctx, "risk advisory unavailable, keeping local composite", "error", err)
		return nil
	}

	advice, err := advisoryDomain.ParseRiskAdvice(text)
	if err != nil {
		r.logger.Debug(ctx, "risk advisory unparseable, keeping local composite", "error", err)
		return nil
	}
	if advice.RiskScore.IsNegative() || advice.RiskScore.GreaterThan(riskCeiling) {
		r.logger.Debug(ctx, "risk advisory out of range, keeping local composite",
			"score", advice.RiskScore)
		return nil
	}
	return advice
}

func clampRisk(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(riskCeiling) {
		return riskCeiling
	}
	return v
}

func defaultRecommendation(level domain.RiskLevel) string {
	switch level {
	case domain.RiskLow:
		return "proceed with recommended size"
	case domain.RiskMedium:
		return "proceed with reduced size"
	case domain.RiskHigh:
		return "reduce size or skip"
	case domain.RiskVeryHigh:
		return "skip this opportunity"
	default:
		return "risk unknown, manual review"
	}
}
