// Package domain contains the core domain types for the pricing context.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/asset"
)

// Pair represents a trading pair using typed assets.
type Pair struct {
	Base  *asset.Asset // e.g., SOL
	Quote *asset.Asset // e.g., USDC
}

// NewPair creates a new trading pair.
func NewPair(base, quote *asset.Asset) Pair {
	if base == nil || quote == nil {
		panic("pricing: nil asset in pair")
	}
	return Pair{Base: base, Quote: quote}
}

// String returns the pair symbol (e.g., "SOL-USDC").
func (p Pair) String() string {
	return p.Base.Symbol() + "-" + p.Quote.Symbol()
}

// PriceObservation is one venue's quoted price for the scan notional.
// Price is quote units per base unit (e.g., USDC per SOL).
type PriceObservation struct {
	Venue     string
	Price     decimal.Decimal
	Timestamp time.Time
}

// PricePair is the most divergent observation pair from one scan cycle.
// Buy holds the lower-priced observation, Sell the higher-priced one.
type PricePair struct {
	Buy     PriceObservation
	Sell    PriceObservation
	DiffPct decimal.Decimal // |p1-p2| / min(p1,p2) * 100
}

var hundred = decimal.NewFromInt(100)

// FindBestDivergentPair scans all unordered observation pairs and returns
// the one with the largest relative price gap. Returns nil for fewer than
// two observations. Ties keep the first pair found in input order, which
// makes the result deterministic for a given observation list.
func FindBestDivergentPair(observations []PriceObservation) *PricePair {
	if len(observations) < 2 {
		return nil
	}

	var best *PricePair
	for i := 0; i < len(observations); i++ {
		for j := i + 1; j < len(observations); j++ {
			a, b := observations[i], observations[j]

			lower, higher := a, b
			if b.Price.LessThan(a.Price) {
				lower, higher = b, a
			}
			if lower.Price.IsZero() {
				continue
			}

			diff := higher.Price.Sub(lower.Price).Div(lower.Price).Mul(hundred)
			if best == nil || diff.GreaterThan(best.DiffPct) {
				best = &PricePair{Buy: lower, Sell: higher, DiffPct: diff}
			}
		}
	}
	return best
}
