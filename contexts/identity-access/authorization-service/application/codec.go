package application

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	"campus/contexts/identity-access/authorization-service/ports"
)

// DefaultTokenTTL is the credential lifetime applied when none is configured.
const DefaultTokenTTL = 72 * time.Hour

// TokenCodec signs and verifies the compact bearer credential. It is a pure
// function of (secret, issuer, clock); it keeps no state and performs no I/O.
type TokenCodec struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Clock  ports.Clock
}

// Issue produces a signed token for the subject, stamped with the configured
// issuer and an absolute expiry of now + TTL read from the codec clock.
func (c TokenCodec) Issue(subject string) (string, error) {
	now := c.Clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl())),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

// Verify checks signature, issuer and expiry and returns the token subject.
// Every failure collapses to ErrAuthenticationFailed so callers cannot learn
// which check rejected the credential.
func (c TokenCodec) Verify(raw string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return c.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.Clock.Now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domainerrors.ErrAuthenticationFailed
	}
	return claims.Subject, nil
}

func (c TokenCodec) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TTL
}
