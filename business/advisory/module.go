// Package advisory implements the advisory bounded context: an optional
// external engine consulted for risk scores, sizing hints and path ideas.
package advisory

import (
	"context"

	"github.com/solwatch/arbbot/business/advisory/app"
	advisoryDI "github.com/solwatch/arbbot/business/advisory/di"
	"github.com/solwatch/arbbot/business/advisory/infra/openai"
	"github.com/solwatch/arbbot/internal/config"
	"github.com/solwatch/arbbot/internal/di"
	"github.com/solwatch/arbbot/internal/logger"
	"github.com/solwatch/arbbot/internal/monolith"
)

// Module implements the advisory bounded context.
type Module struct{}

// RegisterServices registers the advisor with the DI container. When the
// advisory engine is disabled, a nil Advisor is registered; consumers
// treat nil as "no advisory stage".
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, advisoryDI.Advisor, func(sr di.ServiceRegistry) app.Advisor {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		if !cfg.Advisory.Enabled {
			return nil
		}

		client, err := openai.NewClient(openai.ClientConfig{
			BaseURL: cfg.Advisory.BaseURL,
			APIKey:  cfg.Advisory.APIKey,
			Model:   cfg.Advisory.Model,
			Timeout: cfg.Advisory.RequestTimeout,
		}, log)
		if err != nil {
			panic("failed to create advisory client: " + err.Error())
		}
		return client
	})

	return nil
}

// Startup initializes the advisory module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	if mono.Config().Advisory.Enabled {
		mono.Logger().Info(ctx, "advisory module started", "model", mono.Config().Advisory.Model)
	}
	return nil
}
