// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PricingService = di.NewToken[*app.PricingService]("pricing.PricingService")
	BalanceSource  = di.NewToken[app.BalanceSource]("pricing.BalanceSource")
	QuoteSource    = di.NewToken[app.QuoteSource]("pricing.QuoteSource")
	ReferenceFeed  = di.NewToken[app.ReferenceFeed]("pricing.ReferenceFeed")
)

// Helper functions for type-safe access
func GetPricingService(c di.ServiceRegistry) *app.PricingService {
	return di.GetToken(c, PricingService)
}

func GetBalanceSource(c di.ServiceRegistry) app.BalanceSource {
	return di.GetToken(c, BalanceSource)
}

func GetQuoteSource(c di.ServiceRegistry) app.QuoteSource {
	return di.GetToken(c, QuoteSource)
}

func GetReferenceFeed(c di.ServiceRegistry) app.ReferenceFeed {
	return di.GetToken(c, ReferenceFeed)
}
