package jwtauth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rently/pkg/domain-errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key", "rently", "rently-api")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "seller", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "seller", claims.Role)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-signing-key", "rently", "rently-api")

	token, err := svc.GenerateAccessToken(uuid.New(), "buyer", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestJWTService_WrongKey(t *testing.T) {
	issuer := NewJWTService("key-one", "rently", "rently-api")
	verifier := NewJWTService("key-two", "rently", "rently-api")

	token, err := issuer.GenerateAccessToken(uuid.New(), "buyer", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := NewJWTService("test-signing-key", "rently", "rently-api")
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
