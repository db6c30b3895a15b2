package account

import (
	"log/slog"

	httpadapter "campus/contexts/identity-access/account-service/adapters/http"
	"campus/contexts/identity-access/account-service/adapters/memory"
	"campus/contexts/identity-access/account-service/application"
	"campus/contexts/identity-access/account-service/ports"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Cleanup     ports.StudentCleanup
	Tokens      ports.TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	BcryptCost  int
	Logger      *slog.Logger
}

// NewModule wires the account service and transport handler.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Cleanup:     deps.Cleanup,
		Tokens:      deps.Tokens,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		BcryptCost:  deps.BcryptCost,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Token issuing and student cleanup still come from the caller.
func NewInMemoryModule(tokens ports.TokenIssuer, cleanup ports.StudentCleanup, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Cleanup:     cleanup,
		Tokens:      tokens,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
