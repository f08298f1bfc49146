// Package auth implements the credential and token primitives of the
// identity backend: password hashing/verification, issuing and verifying
// signed session tokens, and the bearer-token guard for protected
// operations.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize     = 16
	keySize      = 32
	pbkdf2Rounds = 120000
)

// HashPassword derives a key from password with a fresh random salt.
// Both values are returned as standard-base64 strings, the form they are
// stored in on the user record.
func HashPassword(password string) (saltB64, hashB64 string, err error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", "", err
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, keySize, sha256.New)
	return base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword recomputes the derived key for password with the stored
// salt and compares it to the stored hash in constant time. Malformed
// stored values count as a verification failure, not an error.
func VerifyPassword(password, saltB64, hashB64 string) bool {
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}
	stored, err := base64.StdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, keySize, sha256.New)
	return subtle.ConstantTimeCompare(key, stored) == 1
}
