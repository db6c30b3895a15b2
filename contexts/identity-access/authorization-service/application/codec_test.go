package application

import (
	"errors"
	"testing"
	"time"

	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func testCodec(now time.Time) TokenCodec {
	return TokenCodec{
		Secret: []byte("test-secret"),
		Issuer: "campus",
		TTL:    72 * time.Hour,
		Clock:  fixedClock{now: now},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	codec := testCodec(now)

	token, err := codec.Issue("alice@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "alice@campus.edu" {
		t.Fatalf("expected subject alice@campus.edu, got %q", subject)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	codec := testCodec(issuedAt)

	token, err := codec.Issue("alice@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	late := codec
	late.Clock = fixedClock{now: issuedAt.Add(72*time.Hour + time.Minute)}
	if _, err := late.Verify(token); !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure after expiry, got %v", err)
	}

	justBefore := codec
	justBefore.Clock = fixedClock{now: issuedAt.Add(72*time.Hour - time.Minute)}
	if _, err := justBefore.Verify(token); err != nil {
		t.Fatalf("expected token still valid before expiry, got %v", err)
	}
}

func TestTokenIssuerMismatchIsIndistinguishable(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	other := TokenCodec{
		Secret: []byte("test-secret"),
		Issuer: "someone-else",
		Clock:  fixedClock{now: now},
	}
	token, err := other.Issue("alice@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	codec := testCodec(now)
	if _, err := codec.Verify(token); !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected uniform authentication failure for issuer mismatch, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	codec := testCodec(now)

	token, err := codec.Issue("alice@campus.edu")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := codec.Verify(tampered); !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected uniform authentication failure for bad signature, got %v", err)
	}
}

func TestTokenGarbageInput(t *testing.T) {
	codec := testCodec(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(raw); !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
			t.Fatalf("expected authentication failure for %q, got %v", raw, err)
		}
	}
}
