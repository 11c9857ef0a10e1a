// Package pricing implements the pricing bounded context: venue price
// observations through the aggregator, wallet balance, reference feed.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/pricing/app"
	pricingDI "github.com/solwatch/arbbot/business/pricing/di"
	"github.com/solwatch/arbbot/business/pricing/infra/binance"
	"github.com/solwatch/arbbot/business/pricing/infra/jupiter"
	"github.com/solwatch/arbbot/business/pricing/infra/solana"
	"github.com/solwatch/arbbot/internal/config"
	"github.com/solwatch/arbbot/internal/di"
	"github.com/solwatch/arbbot/internal/logger"
	"github.com/solwatch/arbbot/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, pricingDI.QuoteSource, func(sr di.ServiceRegistry) app.QuoteSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := jupiter.NewClient(jupiter.ClientConfig{
			BaseURL:           cfg.Jupiter.BaseURL,
			Timeout:           cfg.Jupiter.RequestTimeout,
			SlippageBps:       cfg.Jupiter.SlippageBps,
			RequestsPerMinute: cfg.Jupiter.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create jupiter client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, pricingDI.BalanceSource, func(sr di.ServiceRegistry) app.BalanceSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := solana.NewRPCClient(solana.RPCClientConfig{
			URL:     cfg.Solana.RPCURL,
			Timeout: cfg.Solana.RequestTimeout,
		}, log)
		if err != nil {
			panic("failed to create solana rpc client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, pricingDI.ReferenceFeed, func(sr di.ServiceRegistry) app.ReferenceFeed {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		if !cfg.Feed.Enabled {
			return disabledFeed{}
		}
		return binance.NewFeed(binance.FeedConfig{
			WebSocketURL: cfg.Feed.WebSocketURL,
			Symbol:       cfg.Feed.Symbol,
			WindowSize:   cfg.Feed.WindowSize,
			StaleTimeout: cfg.Feed.StaleTimeout,
		}, log)
	})

	di.RegisterToken(c, pricingDI.PricingService, func(sr di.ServiceRegistry) *app.PricingService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewPricingService(pricingDI.GetQuoteSource(sr), cfg.Arbitrage.QuoteDelay, log)
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	feed := pricingDI.GetReferenceFeed(mono.Services())
	if f, ok := feed.(*binance.Feed); ok {
		// A dead feed only costs volatility context, so never fail startup
		if err := f.Start(ctx); err != nil {
			log.Warn(ctx, "reference feed connection failed, risk scoring will use config default volatility", "error", err)
		} else {
			log.Info(ctx, "reference feed connected", "symbol", mono.Config().Feed.Symbol)
		}
	}

	log.Info(ctx, "pricing module started")
	return nil
}

// disabledFeed is the ReferenceFeed used when the feed is switched off.
type disabledFeed struct{}

func (disabledFeed) VolatilityPct() decimal.Decimal { return decimal.Zero }
func (disabledFeed) MidPrice() decimal.Decimal      { return decimal.Zero }
func (disabledFeed) Connected() bool                { return false }
