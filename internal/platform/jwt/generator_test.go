package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("my-secret-key", time.Minute)
	assert.Equal(t, "my-secret-key", string(gen.secret))
	assert.Equal(t, time.Minute, gen.expiration)
}

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   string
		username string
	}{
		{"object id", "665f1c2e9b1d4a0012345678", "alice"},
		{"uuid", "3f2b8c1e-2a4d-4c55-9d7e-0b6a1f2e3d4c", "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", time.Minute)
			tokenStr, err := gen.GenerateToken(tt.userID, tt.username)
			require.NoError(t, err)

			token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid)

			claims := token.Claims.(jwt.MapClaims)
			assert.Equal(t, tt.userID, claims["sub"])
			assert.Equal(t, tt.username, claims["name"])
			assert.Equal(t, Issuer, claims["iss"])
			assert.Contains(t, claims, "exp")
			assert.Contains(t, claims, "iat")
		})
	}
}

func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", 2*time.Minute)
	before := time.Now().Truncate(time.Second)
	tokenStr, err := gen.GenerateToken("u1", "alice")
	require.NoError(t, err)
	after := time.Now().Truncate(time.Second).Add(time.Second)

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	exp := int64(token.Claims.(jwt.MapClaims)["exp"].(float64))
	assert.GreaterOrEqual(t, exp, before.Add(2*time.Minute).Unix())
	assert.LessOrEqual(t, exp, after.Add(2*time.Minute).Unix())
}
