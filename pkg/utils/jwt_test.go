package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateDevToken(secret, "admin-1", "ops@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateDevToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UID)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestValidateDevTokenRejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateDevToken(secret, "admin-1", "", -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "someone-else"}).SignedString(secret)
	require.NoError(t, err)

	otherSecret, err := GenerateDevToken([]byte("other"), "admin-1", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong issuer", foreign},
		{"wrong secret", otherSecret},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateDevToken(secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerateDevTokenRequiresUID(t *testing.T) {
	_, err := GenerateDevToken([]byte("s"), "", "", time.Hour)
	assert.Error(t, err)
}
