package authorization

import (
	"log/slog"
	"time"

	"campus/contexts/identity-access/authorization-service/application"
	"campus/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime
// wiring. Resolver authenticates requests, Guard authorizes them, and Codec
// issues credentials for the login flow.
type Module struct {
	Codec    application.TokenCodec
	Resolver application.PrincipalResolver
	Guard    application.Guard
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	TokenSecret []byte
	TokenIssuer string
	TokenTTL    time.Duration
	Clock       ports.Clock
	Users       ports.UserDirectory
	Classrooms  ports.ClassroomDirectory
	Tasks       ports.TaskDirectory
	Submissions ports.SubmissionDirectory
	Materials   ports.MaterialDirectory
	Logger      *slog.Logger
}

// NewModule wires the codec, resolver and guard using explicit ports.
func NewModule(deps Dependencies) Module {
	codec := application.TokenCodec{
		Secret: deps.TokenSecret,
		Issuer: deps.TokenIssuer,
		TTL:    deps.TokenTTL,
		Clock:  deps.Clock,
	}
	resolver := application.PrincipalResolver{
		Codec:  codec,
		Users:  deps.Users,
		Logger: deps.Logger,
	}
	guard := application.Guard{
		Oracle: application.OwnershipOracle{
			Classrooms:  deps.Classrooms,
			Tasks:       deps.Tasks,
			Submissions: deps.Submissions,
			Materials:   deps.Materials,
			Logger:      deps.Logger,
		},
		Logger: deps.Logger,
	}
	return Module{
		Codec:    codec,
		Resolver: resolver,
		Guard:    guard,
	}
}
