package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
)

// MarketAnalysis carries the off-chain market context captured with an
// opportunity, for risk scoring and cycle snapshots.
type MarketAnalysis struct {
	ReferenceMid  decimal.Decimal
	VolatilityPct decimal.Decimal
	FeedLive      bool
}

// Opportunity is the central entity of one scan cycle: a priced,
// costed round trip between the two most divergent venues. It is
// constructed fresh each cycle, enriched in place by the risk scorer
// and the sizer, then discarded once the cycle's decision is logged.
type Opportunity struct {
	ID        string
	Timestamp time.Time
	Pair      pricingDomain.Pair

	BuyVenue  string
	SellVenue string
	BuyPrice  decimal.Decimal // quote per base
	SellPrice decimal.Decimal

	PriceDiffPct decimal.Decimal
	Costs        CostBreakdown
	NetProfitPct decimal.Decimal // PriceDiffPct - Costs.Total

	InputAmount asset.Amount

	// Optional stages fill these in.
	Market          *MarketAnalysis
	Risk            *RiskAssessment
	RecommendedSize *asset.Amount
	AlternatePaths  []PathCandidate
}

// NewOpportunity builds an opportunity from a divergent pair and its costs.
func NewOpportunity(
	pair pricingDomain.Pair,
	best pricingDomain.PricePair,
	costs CostBreakdown,
	input asset.Amount,
) *Opportunity {
	return &Opportunity{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Pair:         pair,
		BuyVenue:     best.Buy.Venue,
		SellVenue:    best.Sell.Venue,
		BuyPrice:     best.Buy.Price,
		SellPrice:    best.Sell.Price,
		PriceDiffPct: best.DiffPct,
		Costs:        costs,
		NetProfitPct: best.DiffPct.Sub(costs.Total),
		InputAmount:  input,
	}
}
