package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields the dashboard reads out of the upstream bearer
// token. The storefront holds the signing key, so the token is decoded
// without signature verification: the gateway only needs identity and expiry,
// and the upstream re-verifies the token on every proxied call.
type TokenClaims struct {
	UserID    int
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// ParseToken decodes a JWT without verifying its signature.
func ParseToken(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	out := &TokenClaims{}
	if v, ok := claims["userId"].(float64); ok {
		out.UserID = int(v)
	}
	if v, ok := claims["sub"].(string); ok {
		out.Subject = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
