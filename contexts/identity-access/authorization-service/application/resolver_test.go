package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	"campus/contexts/identity-access/authorization-service/ports"
)

type fakeUsers struct {
	byEmail map[string]ports.UserRecord
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (ports.UserRecord, bool, error) {
	record, ok := f.byEmail[email]
	return record, ok, nil
}

func testResolver() PrincipalResolver {
	codec := testCodec(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	return PrincipalResolver{
		Codec: codec,
		Users: fakeUsers{byEmail: map[string]ports.UserRecord{
			"alice@campus.edu": {ID: "user-1", Email: "alice@campus.edu", Role: entities.RoleProfessor},
		}},
	}
}

func TestResolveMissingHeader(t *testing.T) {
	resolver := testResolver()
	_, err := resolver.Resolve(context.Background(), "")
	if !errors.Is(err, domainerrors.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestResolveNonBearerScheme(t *testing.T) {
	resolver := testResolver()
	_, err := resolver.Resolve(context.Background(), "Basic dXNlcjpwYXNz")
	if !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestResolveKnownSubject(t *testing.T) {
	resolver := testResolver()
	token, err := resolver.Codec.Issue("alice@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, err := resolver.Resolve(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.UserID != "user-1" || got.Role != entities.RoleProfessor {
		t.Fatalf("unexpected principal %+v", got)
	}
}

func TestResolveUnknownSubjectLooksLikeBadToken(t *testing.T) {
	resolver := testResolver()
	token, err := resolver.Codec.Issue("ghost@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), "Bearer "+token)
	if !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected the same failure as a bad token, got %v", err)
	}
}
