package settingsservice

import (
	"log/slog"

	httpadapter "timepay/contexts/monetization/settings-service/adapters/http"
	"timepay/contexts/monetization/settings-service/adapters/memory"
	"timepay/contexts/monetization/settings-service/application"
	"timepay/contexts/monetization/settings-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.SettingsRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.NewHandler(service, deps.Logger),
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
