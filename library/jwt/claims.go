package jwt

import (
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload carried by the admin session cookie.
type SessionClaims struct {
	jwtLib.RegisteredClaims
	Username string `json:"username"`
}
