// Package jwt signs and verifies the admin session tokens.
package jwt

import (
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an admin session stays valid.
const SessionTTL = time.Hour

var secret []byte

// Initialize sets the shared signing secret.
func Initialize(s []byte) error {
	if len(s) == 0 {
		return errors.New("empty jwt secret")
	}

	secret = s
	return nil
}

// Sign issues a session token for the given username.
func Sign(username string) (string, error) {
	now := gutils.Clock.GetUTCNow()
	claims := &SessionClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(SessionTTL)),
		},
		Username: username,
	}

	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, claims).
		SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}

	return token, nil
}

// Verify parses a session token and returns its claims.
func Verify(token string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	parsed, err := jwtLib.ParseWithClaims(token, claims,
		func(t *jwtLib.Token) (any, error) {
			return secret, nil
		},
		jwtLib.WithValidMethods([]string{jwtLib.SigningMethodHS256.Alg()}),
		jwtLib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse session token")
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}
