package application

import (
	"context"
	"log/slog"
	"strings"

	"campus/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	"campus/contexts/identity-access/authorization-service/ports"
)

const bearerPrefix = "bearer "

// PrincipalResolver turns a raw Authorization header into an authenticated
// Principal. The principal is bound to the current request only; it is never
// cached across requests.
type PrincipalResolver struct {
	Codec  TokenCodec
	Users  ports.UserDirectory
	Logger *slog.Logger
}

// Resolve rejects an absent header with ErrMissingCredential, then verifies
// the bearer token and looks the subject up in the user directory. A verify
// failure and an unknown subject surface as the same ErrAuthenticationFailed
// so the response never reveals which step rejected the request.
func (r PrincipalResolver) Resolve(ctx context.Context, authorizationHeader string) (entities.Principal, error) {
	logger := ResolveLogger(r.Logger)

	header := strings.TrimSpace(authorizationHeader)
	if header == "" {
		return entities.Principal{}, domainerrors.ErrMissingCredential
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return entities.Principal{}, domainerrors.ErrAuthenticationFailed
	}

	subject, err := r.Codec.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		logger.Debug("bearer token rejected",
			"event", "authz_token_rejected",
			"module", "identity-access/authorization-service",
			"layer", "application",
		)
		return entities.Principal{}, domainerrors.ErrAuthenticationFailed
	}

	user, found, err := r.Users.FindByEmail(ctx, subject)
	if err != nil {
		logger.Error("principal lookup failed",
			"event", "authz_principal_lookup_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Principal{}, domainerrors.ErrAuthenticationFailed
	}
	if !found {
		return entities.Principal{}, domainerrors.ErrAuthenticationFailed
	}

	return entities.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
