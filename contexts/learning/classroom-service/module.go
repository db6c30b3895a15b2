package classroom

import (
	"log/slog"

	httpadapter "campus/contexts/learning/classroom-service/adapters/http"
	"campus/contexts/learning/classroom-service/adapters/memory"
	"campus/contexts/learning/classroom-service/application"
	"campus/contexts/learning/classroom-service/ports"
)

// Module is the classroom-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Classrooms  ports.ClassroomRepository
	Tasks       ports.TaskRepository
	Submissions ports.SubmissionRepository
	Materials   ports.MaterialRepository
	Blobs       ports.BlobStore
	Accounts    ports.AccountDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the classroom service and transport handler.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Classrooms:  deps.Classrooms,
		Tasks:       deps.Tasks,
		Submissions: deps.Submissions,
		Materials:   deps.Materials,
		Blobs:       deps.Blobs,
		Accounts:    deps.Accounts,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The blob store and account directory still come from the caller.
func NewInMemoryModule(blobs ports.BlobStore, accounts ports.AccountDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Classrooms:  store,
		Tasks:       store,
		Submissions: store,
		Materials:   store,
		Blobs:       blobs,
		Accounts:    accounts,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
