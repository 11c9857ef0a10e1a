package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

// EvaluatorConfig holds evaluation thresholds and the cost model inputs.
type EvaluatorConfig struct {
	// MinProfitPct is the net profitability threshold; at or below it an
	// opportunity is not actionable.
	MinProfitPct decimal.Decimal

	// MinBalance is the operating floor; below it evaluation is unsafe.
	MinBalance asset.Amount

	// FeeTable maps venue labels to their per-leg fee in percent.
	FeeTable map[string]decimal.Decimal

	Costs domain.CostParams
}

// Evaluator turns one cycle's observations into a profitability decision.
type Evaluator struct {
	config EvaluatorConfig
	logger logger.LoggerInterface
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(cfg EvaluatorConfig, log logger.LoggerInterface) *Evaluator {
	return &Evaluator{config: cfg, logger: log}
}

// Evaluate scores the observations against the cost model.
//
// Returns (nil, error) for inputs too thin to evaluate safely, and
// (nil, nil) when the best divergence exists but does not clear the
// profitability threshold after costs. Only a cleared threshold yields
// an Opportunity.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	pair pricingDomain.Pair,
	observations []pricingDomain.PriceObservation,
	balance asset.Amount,
	input asset.Amount,
) (*domain.Opportunity, error) {
	if len(observations) < 2 {
		return nil, apperror.New(apperror.CodeInsufficientObservations,
			apperror.WithContext(fmt.Sprintf("have %d, need 2", len(observations))))
	}

	below, err := balance.LessThan(e.config.MinBalance)
	if err != nil {
		return nil, err
	}
	if below {
		return nil, apperror.New(apperror.CodeBalanceBelowFloor,
			apperror.WithContext(fmt.Sprintf("balance %s below floor %s",
				balance, e.config.MinBalance)))
	}

	best := pricingDomain.FindBestDivergentPair(observations)
	if best == nil {
		return nil, nil
	}

	costs, err := e.costBreakdown(best, input)
	if err != nil {
		return nil, err
	}

	net := best.DiffPct.Sub(costs.Total)
	if net.LessThanOrEqual(e.config.MinProfitPct) {
		e.logger.Debug(ctx, "divergence below threshold",
			"buy", best.Buy.Venue, "sell", best.Sell.Venue,
			"diff_pct", best.DiffPct.StringFixed(4),
			"costs_pct", costs.Total.StringFixed(4),
			"net_pct", net.StringFixed(4))
		return nil, nil
	}

	opp := domain.NewOpportunity(pair, *best, costs, input)
	e.logger.Info(ctx, "opportunity detected",
		"id", opp.ID,
		"buy", opp.BuyVenue, "sell", opp.SellVenue,
		"net_pct", opp.NetProfitPct.StringFixed(4))

	return opp, nil
}

func (e *Evaluator) costBreakdown(best *pricingDomain.PricePair, input asset.Amount) (domain.CostBreakdown, error) {
	gas, err := e.config.Costs.NetworkFeePct(input)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	dexFees := e.feeFor(best.Buy.Venue).Add(e.feeFor(best.Sell.Venue))
	slippage := e.config.Costs.SlippagePct(input, best.Buy.Venue).
		Add(e.config.Costs.SlippagePct(input, best.Sell.Venue))

	return domain.CostBreakdown{
		DexFees:  dexFees,
		GasCost:  gas,
		Slippage: slippage,
		Total:    dexFees.Add(gas).Add(slippage),
	}, nil
}

func (e *Evaluator) feeFor(venue string) decimal.Decimal {
	if f, ok := e.config.FeeTable[venue]; ok {
		return f
	}
	return decimal.Zero
}
