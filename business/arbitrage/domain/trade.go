package domain

import (
	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
)

// TradeDetails is the simulated two-leg round trip of an opportunity.
// All amounts are in decimal base-asset or quote-asset units.
type TradeDetails struct {
	Input decimal.Decimal // base units committed

	SellLegGross decimal.Decimal // quote received at the sell venue, pre fee
	SellLegNet   decimal.Decimal // quote after the sell venue fee
	BuyLegGross  decimal.Decimal // base bought back at the buy venue, pre fee
	BuyLegNet    decimal.Decimal // base after the buy venue fee

	NetworkFee   decimal.Decimal // base units
	SlippageLoss decimal.Decimal // base units, against the original input

	Final     decimal.Decimal // base units after all deductions
	Profit    decimal.Decimal
	ProfitPct decimal.Decimal
}

// ComputeTradeDetails simulates the round trip: sell the notional at the
// higher-priced venue, buy it back at the lower-priced venue, then settle
// costs. Venue fees come off the converted amount of each leg, not the
// input; the slippage loss is charged against the original notional, not
// the intermediate amount. The deduction order is normative: reordering
// changes the numbers.
func ComputeTradeDetails(opp *Opportunity, feeTable map[string]decimal.Decimal, params CostParams) (TradeDetails, error) {
	input := opp.InputAmount.ToDecimal()
	if input.IsZero() {
		return TradeDetails{}, apperror.New(apperror.CodeZeroNotional,
			apperror.WithContext("trade simulation undefined for zero notional"))
	}
	if opp.BuyPrice.IsZero() {
		return TradeDetails{}, apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("buy price must be positive"))
	}

	feePct := func(venue string) decimal.Decimal {
		if f, ok := feeTable[venue]; ok {
			return f
		}
		return decimal.Zero
	}
	afterFee := func(amount decimal.Decimal, venue string) decimal.Decimal {
		return amount.Sub(amount.Mul(feePct(venue)).Div(hundred))
	}

	d := TradeDetails{Input: input}

	// Leg 1: base -> quote at the sell (higher-priced) venue.
	d.SellLegGross = input.Mul(opp.SellPrice)
	d.SellLegNet = afterFee(d.SellLegGross, opp.SellVenue)

	// Leg 2: quote -> base at the buy (lower-priced) venue.
	d.BuyLegGross = d.SellLegNet.Div(opp.BuyPrice)
	d.BuyLegNet = afterFee(d.BuyLegGross, opp.BuyVenue)

	// Flat network fee in base units.
	d.NetworkFee = decimal.New(int64(params.NetworkFeeLamports), 0).
		Div(decimal.New(asset.LamportsPerSOL, 0))

	// Slippage for both legs, charged against the original notional.
	slipPct := params.SlippagePct(opp.InputAmount, opp.BuyVenue).
		Add(params.SlippagePct(opp.InputAmount, opp.SellVenue))
	d.SlippageLoss = input.Mul(slipPct).Div(hundred)

	d.Final = d.BuyLegNet.Sub(d.NetworkFee).Sub(d.SlippageLoss)
	d.Profit = d.Final.Sub(input)
	d.ProfitPct = d.Profit.Div(input).Mul(hundred)

	return d, nil
}
