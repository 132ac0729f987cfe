package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)
	tok, err := NewTokenWithClaims(jwtAuth, time.Hour, Claims{Subject: "admin-1", Role: "super_admin"})
	require.NoError(t, err)

	c, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", c.Subject)
	assert.Equal(t, "super_admin", c.Role)
}

func TestTokenRejected(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	expired, err := NewTokenWithClaims(jwtAuth, -time.Minute, Claims{Subject: "admin-1"})
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, expired)
	assert.Error(t, err)

	other := jwtauth.New("HS256", []byte("other"), nil)
	foreign, err := NewTokenWithClaims(other, time.Hour, Claims{Subject: "admin-1"})
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, foreign)
	assert.Error(t, err)

	noSub, err := NewTokenWithClaims(jwtAuth, time.Hour, Claims{})
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, noSub)
	assert.Error(t, err)

	_, err = VerifyToken(jwtAuth, "not-a-token")
	assert.Error(t, err)
}
