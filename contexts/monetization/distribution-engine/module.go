package distributionengine

import (
	"log/slog"

	httpadapter "timepay/contexts/monetization/distribution-engine/adapters/http"
	"timepay/contexts/monetization/distribution-engine/adapters/memory"
	"timepay/contexts/monetization/distribution-engine/application"
	"timepay/contexts/monetization/distribution-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository                 ports.Repository
	Usage                      ports.UsageSource
	Settings                   ports.SettingsSource
	Developers                 ports.DeveloperDirectory
	Outbox                     ports.OutboxWriter
	Clock                      ports.Clock
	IDGenerator                ports.IDGenerator
	DisableRunEventEmission    bool
	DisablePayoutEventEmission bool
	Logger                     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                       deps.Repository,
		Usage:                      deps.Usage,
		Settings:                   deps.Settings,
		Developers:                 deps.Developers,
		Outbox:                     deps.Outbox,
		Clock:                      deps.Clock,
		IDGen:                      deps.IDGenerator,
		DisableRunEventEmission:    deps.DisableRunEventEmission,
		DisablePayoutEventEmission: deps.DisablePayoutEventEmission,
		Logger:                     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Usage:       store,
		Settings:    store,
		Developers:  store,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
