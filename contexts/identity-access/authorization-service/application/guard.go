package application

import (
	"context"
	"log/slog"

	"campus/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	"campus/contexts/identity-access/authorization-service/domain/services"
)

// Guard evaluates a RouteSpec for one request. It is the single entry point
// the HTTP layer calls before invoking business logic; no handler runs, and
// no state mutates, unless Authorize returned nil.
type Guard struct {
	Oracle OwnershipOracle
	Logger *slog.Logger
}

// Authorize runs the fixed decision order: (1) existence of every resource
// referenced in the path, (2) role capability, (3) the spec's ownership checks
// in declared order. The first failure short-circuits the chain.
func (g Guard) Authorize(ctx context.Context, principal entities.Principal, spec entities.RouteSpec, params PathParams) error {
	logger := ResolveLogger(g.Logger)

	resolved, err := g.Oracle.Resolve(ctx, params)
	if err != nil {
		return err
	}

	if !services.Allows(principal.Role, spec.Capability) {
		logger.Debug("capability denied",
			"event", "authz_capability_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role", string(principal.Role),
			"capability", string(spec.Capability),
		)
		return domainerrors.ErrForbidden
	}

	for _, check := range spec.Checks {
		if err := g.Oracle.Evaluate(principal, check, resolved); err != nil {
			logger.Debug("resource check denied",
				"event", "authz_resource_check_denied",
				"module", "identity-access/authorization-service",
				"layer", "application",
				"user_id", principal.UserID,
				"check", string(check),
			)
			return err
		}
	}
	return nil
}
