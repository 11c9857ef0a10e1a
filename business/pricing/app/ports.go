// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
)

// QuoteOptions restricts how the aggregator may route a quote.
type QuoteOptions struct {
	// OnlyVenues limits routing to these venue labels.
	OnlyVenues []string
	// ExcludeVenues removes these venue labels from routing.
	ExcludeVenues []string
}

// QuoteSource defines the interface for aggregator quote providers.
type QuoteSource interface {
	// GetQuote retrieves a swap quote for the given amount. A failed or
	// empty quote returns a typed error, never a zero-valued quote:
	// "data unavailable" is a distinct state from "no opportunity".
	GetQuote(ctx context.Context, tokenIn, tokenOut *asset.Asset, amountIn asset.Amount, opts QuoteOptions) (*domain.Quote, error)
}

// BalanceSource defines the interface for wallet balance lookups.
type BalanceSource interface {
	// Balance returns the owner's native balance in base units.
	Balance(ctx context.Context, owner string) (asset.Amount, error)
}

// ReferenceFeed supplies off-chain market context for risk scoring.
type ReferenceFeed interface {
	// VolatilityPct returns the rolling volatility of the reference
	// price as a percentage, or zero when the window is not warm.
	VolatilityPct() decimal.Decimal

	// MidPrice returns the latest reference mid price, or zero.
	MidPrice() decimal.Decimal

	// Connected reports whether the feed currently has live data.
	Connected() bool
}
