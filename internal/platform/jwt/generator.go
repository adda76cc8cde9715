// Package jwtmw issues and verifies the short-lived service tokens the web front-end
// sends to the analysis service on behalf of a logged-in user.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret names the shared HMAC secret variable.
const EnvKeyJWTSecret = "SERVICE_JWT_SECRET"

// Issuer is set on every token and checked by the middleware.
const Issuer = "stock-sentiment-web"

// Generator defines the interface for service token generation.
type Generator interface {
	// GenerateToken creates a signed token identifying the given user.
	GenerateToken(userID, username string) (string, error)
}

type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a generator signing with HS256.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT with sub, name, iss, iat and exp claims.
func (g *generator) GenerateToken(userID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": username,
		"iss":  Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
