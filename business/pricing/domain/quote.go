package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/asset"
)

// Quote represents an aggregator quote for a single swap.
type Quote struct {
	TokenIn   *asset.Asset
	TokenOut  *asset.Asset
	AmountIn  asset.Amount
	AmountOut asset.Amount
	Price     decimal.Decimal // AmountOut per AmountIn, decimal-adjusted
	Venue     string          // label of the first route leg
	Timestamp time.Time
}

// NewQuote creates a Quote, deriving the effective price from the amounts.
func NewQuote(tokenIn, tokenOut *asset.Asset, amountIn, amountOut asset.Amount, venue string) Quote {
	rate := decimal.Zero
	if !amountIn.IsZero() {
		rate = amountOut.ToDecimal().Div(amountIn.ToDecimal())
	}

	return Quote{
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		Price:     rate,
		Venue:     venue,
		Timestamp: time.Now(),
	}
}
