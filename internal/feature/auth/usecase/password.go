package usecase

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltBytes = 16

	// argon2id parameters (OWASP minimum profile).
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
)

// NewSalt returns 16 random bytes, hex encoded.
func NewSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives an argon2id hash of password with salt. An empty salt is
// replaced by a fresh random one. Both values are hex strings.
func HashPassword(password, salt string) (hash, usedSalt string, err error) {
	if salt == "" {
		if salt, err = NewSalt(); err != nil {
			return "", "", err
		}
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key), salt, nil
}

// VerifyPassword recomputes the hash with salt and compares in constant time.
func VerifyPassword(password, salt, hash string) bool {
	got, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}
