package reportingservice

import (
	"log/slog"

	httpadapter "timepay/contexts/monetization/reporting-service/adapters/http"
	"timepay/contexts/monetization/reporting-service/adapters/memory"
	"timepay/contexts/monetization/reporting-service/application"
	"timepay/contexts/monetization/reporting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Developers ports.DeveloperDirectory
	Earnings   ports.EarningsReader
	Runs       ports.RunReader
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Developers: deps.Developers,
		Earnings:   deps.Earnings,
		Runs:       deps.Runs,
		Logger:     deps.Logger,
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
		Developers: store,
		Earnings:   store,
		Runs:       store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
