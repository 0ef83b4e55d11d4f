package trackingservice

import (
	"log/slog"

	httpadapter "timepay/contexts/engagement/tracking-service/adapters/http"
	"timepay/contexts/engagement/tracking-service/adapters/memory"
	"timepay/contexts/engagement/tracking-service/application"
	"timepay/contexts/engagement/tracking-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	KeyGenerator ports.KeyGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		KeyGen: deps.KeyGenerator,
		Logger: deps.Logger,
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
		Repository:   store,
		Clock:        store,
		IDGenerator:  store,
		KeyGenerator: store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
