// Package monolith ties the bounded-context modules to the shared
// runtime: config, logger, asset registry and the DI container.
package monolith

import (
	"context"

	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/config"
	"github.com/solwatch/arbbot/internal/di"
	"github.com/solwatch/arbbot/internal/logger"
)

// Monolith gives modules access to the shared runtime.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	AssetRegistry() *asset.Registry
	Services() di.ServiceRegistry
}

// Module is one bounded context. RegisterServices runs for every
// module before any Startup, so factories may resolve services from
// modules registered later.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

type app struct {
	config        *config.Config
	logger        logger.LoggerInterface
	assetRegistry *asset.Registry
	container     di.Container
}

// New creates the runtime container. The asset registry starts from
// the well-known Solana mints.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	registry := asset.DefaultRegistry()

	container := di.NewContainer()
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("assetRegistry", registry)

	return &app{
		config:        cfg,
		logger:        log,
		assetRegistry: registry,
		container:     container,
	}, nil
}

func (a *app) Config() *config.Config         { return a.config }
func (a *app) Logger() logger.LoggerInterface { return a.logger }
func (a *app) AssetRegistry() *asset.Registry { return a.assetRegistry }
func (a *app) Services() di.ServiceRegistry   { return a.container }

// Container returns the DI container for module registration.
func (a *app) Container() di.Container { return a.container }

// RegisterModules runs every module's service registration.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts modules in the given order and stops at the
// first failure.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
