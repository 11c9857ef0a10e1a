// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/solwatch/arbbot/business/arbitrage/app"
	"github.com/solwatch/arbbot/business/arbitrage/domain"
	"github.com/solwatch/arbbot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Pipeline  = di.NewToken[*app.Pipeline]("arbitrage.Pipeline")
	Scheduler = di.NewToken[*app.Scheduler]("arbitrage.Scheduler")
	Reporter  = di.NewToken[app.Reporter]("arbitrage.Reporter")
	Stats     = di.NewToken[*domain.BotStats]("arbitrage.Stats")
)

// Helper functions for type-safe access
func GetPipeline(c di.ServiceRegistry) *app.Pipeline {
	return di.GetToken(c, Pipeline)
}

func GetScheduler(c di.ServiceRegistry) *app.Scheduler {
	return di.GetToken(c, Scheduler)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetStats(c di.ServiceRegistry) *domain.BotStats {
	return di.GetToken(c, Stats)
}
