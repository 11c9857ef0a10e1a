// Package domain contains the core domain types for the arbitrage context.
package domain

import (
	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
)

var (
	hundred = decimal.NewFromInt(100)

	volumeTierOne = decimal.NewFromInt(1)
	volumeTierTen = decimal.NewFromInt(10)

	volumeFactorLow  = decimal.NewFromInt(1)
	volumeFactorMid  = decimal.RequireFromString("1.5")
	volumeFactorHigh = decimal.NewFromInt(2)
)

// CostParams holds the tunable constants of the cost model. The slippage
// coefficients and the liquidity table are uncalibrated heuristics, kept
// configurable rather than hard-coded.
type CostParams struct {
	// NetworkFeeLamports is the flat network cost of a two-hop swap cycle.
	NetworkFeeLamports uint64

	// SlippageBasePct is the slippage baseline per leg, in percent.
	SlippageBasePct decimal.Decimal

	// VenueLiquidity maps venue labels to liquidity factors. Higher
	// factor means deeper liquidity and lower slippage. Unknown venues
	// use 1.0.
	VenueLiquidity map[string]decimal.Decimal
}

// CostBreakdown itemizes estimated round-trip costs, all in percent of
// notional.
type CostBreakdown struct {
	DexFees  decimal.Decimal // both legs
	GasCost  decimal.Decimal
	Slippage decimal.Decimal // both legs
	Total    decimal.Decimal
}

// NetworkFeePct estimates the network fee as a percentage of the notional.
// The fee is flat, so the percentage diverges as the notional shrinks;
// a zero notional is a caller error, not infinity.
func (p CostParams) NetworkFeePct(notional asset.Amount) (decimal.Decimal, error) {
	if notional.IsZero() {
		return decimal.Zero, apperror.New(apperror.CodeZeroNotional,
			apperror.WithContext("network fee percentage undefined for zero notional"))
	}

	feeSOL := decimal.New(int64(p.NetworkFeeLamports), 0).
		Div(decimal.New(asset.LamportsPerSOL, 0))
	return feeSOL.Div(notional.ToDecimal()).Mul(hundred), nil
}

// SlippagePct estimates one leg's execution slippage in percent:
// base * volumeFactor / liquidityFactor(venue). Crude and monotonic in
// notional; an approximation, not a depth model.
func (p CostParams) SlippagePct(notional asset.Amount, venue string) decimal.Decimal {
	units := notional.ToDecimal()

	factor := volumeFactorHigh
	switch {
	case units.LessThanOrEqual(volumeTierOne):
		factor = volumeFactorLow
	case units.LessThanOrEqual(volumeTierTen):
		factor = volumeFactorMid
	}

	liquidity := p.liquidityFactor(venue)
	return p.SlippageBasePct.Mul(factor).Div(liquidity)
}

func (p CostParams) liquidityFactor(venue string) decimal.Decimal {
	if f, ok := p.VenueLiquidity[venue]; ok && f.IsPositive() {
		return f
	}
	return decimal.NewFromInt(1)
}
