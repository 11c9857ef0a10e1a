// Package arbitrage implements the arbitrage bounded context: cost
// model, opportunity evaluation, risk scoring, trade sizing, path
// search and the scan pipeline that ties them together.
package arbitrage

import (
	"context"

	"github.com/shopspring/decimal"

	advisoryDI "github.com/solwatch/arbbot/business/advisory/di"
	"github.com/solwatch/arbbot/business/arbitrage/app"
	arbitrageDI "github.com/solwatch/arbbot/business/arbitrage/di"
	"github.com/solwatch/arbbot/business/arbitrage/domain"
	"github.com/solwatch/arbbot/business/arbitrage/infra"
	lendingDomain "github.com/solwatch/arbbot/business/lending/domain"
	pricingDI "github.com/solwatch/arbbot/business/pricing/di"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/config"
	"github.com/solwatch/arbbot/internal/di"
	"github.com/solwatch/arbbot/internal/logger"
	"github.com/solwatch/arbbot/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbitrageDI.Stats, func(sr di.ServiceRegistry) *domain.BotStats {
		return domain.NewBotStats()
	})

	di.RegisterToken(c, arbitrageDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		cfg := sr.Get("config").(*config.Config)

		if cfg.Arbitrage.TUIMode {
			pair := pricingDomain.NewPair(asset.SOL, asset.USDC)
			return infra.NewTUIReporter(pair.String())
		}
		return infra.NewConsoleReporter()
	})

	di.RegisterToken(c, arbitrageDI.Pipeline, func(sr di.ServiceRegistry) *app.Pipeline {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		arb := cfg.Arbitrage
		notional := mustSOLAmount(arb.TradeNotionalSOL)
		advisor := advisoryDI.GetAdvisor(sr)

		evaluator := app.NewEvaluator(app.EvaluatorConfig{
			MinProfitPct: arb.MinProfitPctDecimal(),
			MinBalance:   mustSOLAmount(arb.MinBalanceSOL),
			FeeTable:     arb.VenueFeesDecimal(),
			Costs: domain.CostParams{
				NetworkFeeLamports: arb.NetworkFeeLamports,
				SlippageBasePct:    decimal.NewFromFloat(arb.SlippageBasePct),
				VenueLiquidity:     arb.VenueLiquidityDecimal(),
			},
		}, log)

		sizer := app.NewTradeSizer(advisor, mustSOLAmount(arb.MaxTradeSOL), log)

		var risk *app.RiskScorer
		if cfg.Risk.Enabled {
			risk = app.NewRiskScorer(advisor, log)
		}

		var paths *app.PathSearch
		if arb.PathSearchEnabled {
			paths = app.NewPathSearch(
				pricingDI.GetQuoteSource(sr), registry, advisor,
				app.PathSearchConfig{
					StartSymbol: asset.SOL.Symbol(),
					MaxHops:     arb.MaxHops,
					HopDelay:    arb.HopDelay,
				}, log)
		}

		var snapshots app.SnapshotWriter
		if cfg.Telemetry.Enabled && cfg.Telemetry.SnapshotDir != "" {
			writer, err := infra.NewFileSnapshotWriter(cfg.Telemetry.SnapshotDir)
			if err != nil {
				log.Warn(context.Background(), "snapshot writer disabled", "error", err)
			} else {
				snapshots = writer
			}
		}

		var position *lendingDomain.Position
		if cfg.Margin.Enabled {
			p := lendingDomain.NewPosition(cfg.Margin.CollateralLamports, cfg.Margin.BorrowedLamports)
			position = &p
		}

		return app.NewPipeline(app.PipelineDeps{
			Pricing:   pricingDI.GetPricingService(sr),
			Balances:  pricingDI.GetBalanceSource(sr),
			Feed:      pricingDI.GetReferenceFeed(sr),
			Evaluator: evaluator,
			Risk:      risk,
			Sizer:     sizer,
			Paths:     paths,
			Reporter:  arbitrageDI.GetReporter(sr),
			Snapshots: snapshots,
			Stats:     arbitrageDI.GetStats(sr),
			Position:  position,
			Logger:    log,
		}, app.PipelineConfig{
			Pair:                 pricingDomain.NewPair(asset.SOL, asset.USDC),
			Venues:               arb.Venues,
			Notional:             notional,
			WalletAddress:        cfg.Solana.WalletAddress,
			DefaultVolatilityPct: decimal.NewFromFloat(cfg.Risk.DefaultVolatilityPct),
			PoolLiquidity:        decimal.NewFromFloat(cfg.Risk.AssumedPoolLiquidity),
		})
	})

	di.RegisterToken(c, arbitrageDI.Scheduler, func(sr di.ServiceRegistry) *app.Scheduler {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewScheduler(arbitrageDI.GetPipeline(sr), cfg.Arbitrage.Interval, log)
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	reporter := arbitrageDI.GetReporter(mono.Services())
	if err := reporter.Start(ctx); err != nil {
		return err
	}

	mono.Logger().Info(ctx, "arbitrage module started",
		"venues", mono.Config().Arbitrage.Venues,
		"interval", mono.Config().Arbitrage.Interval.String(),
		"risk", mono.Config().Risk.Enabled,
		"path_search", mono.Config().Arbitrage.PathSearchEnabled)
	return nil
}

func mustSOLAmount(units float64) asset.Amount {
	amount, err := asset.ParseDecimal(asset.SOL, decimal.NewFromFloat(units))
	if err != nil {
		panic("invalid SOL amount in config: " + err.Error())
	}
	return amount
}
