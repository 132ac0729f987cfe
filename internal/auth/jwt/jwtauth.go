package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const roleClaim = "role"

// Claims are the identity fields carried by an admin token.
type Claims struct {
	Subject string
	Role    string
}

// VerifyToken checks the signature and expiry of token and returns its claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}
	if t.Subject() == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	c := &Claims{Subject: t.Subject()}
	if v, ok := t.Get(roleClaim); ok {
		c.Role, _ = v.(string)
	}
	return c, nil
}

// NewTokenWithClaims creates a JWT for subject expiring after ttl. Role is
// optional.
func NewTokenWithClaims(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, c Claims) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if c.Subject != "" {
		claims["sub"] = c.Subject
	}
	if c.Role != "" {
		claims[roleClaim] = c.Role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
