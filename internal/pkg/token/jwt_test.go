package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/pkg/token"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	signed, expiresAt, err := svc.GenerateToken("sess-1", token.RoleGuest)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, token.RoleGuest, claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	signed, _, err := token.NewService("a", time.Hour).GenerateToken("sess-1", token.RoleGuest)
	require.NoError(t, err)

	_, err = token.NewService("b", time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	svc := token.NewService("segredo", -time.Minute)
	signed, _, err := svc.GenerateToken("sess-1", token.RoleGuest)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
