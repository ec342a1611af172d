// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16
)

// NewSalt returns a fresh per-user salt. Every user row owns exactly one
// salt/digest pair; the salt is regenerated whenever the password changes.
func NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(salt), nil
}

// HashPassword derives an Argon2id digest of password under the given salt.
// Deterministic for a fixed (salt, password) pair.
func HashPassword(salt, password string) (string, error) {
	if salt == "" || password == "" {
		return "", fmt.Errorf("hash password: empty salt or password: %w", ErrInvalidInput)
	}

	rawSalt, err := base64.RawURLEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("hash password: decode salt: %w", ErrInvalidInput)
	}

	digest := argon2.IDKey(
		[]byte(password),
		rawSalt,
		argonTime,
		argonMemory,
		argonThreads,
		argonKeyLen,
	)

	return base64.RawURLEncoding.EncodeToString(digest), nil
}

// VerifyPassword recomputes the digest and compares in constant time with
// respect to the digest value.
func VerifyPassword(salt, password, expectedDigest string) bool {
	computed, err := HashPassword(salt, password)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(
		[]byte(computed),
		[]byte(expectedDigest),
	) == 1
}

var (
	dummySalt   string
	dummyDigest string
)

func init() {
	salt, err := NewSalt()
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy salt: %v", err))
	}

	digest, err := HashPassword(salt, "dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy digest: %v", err))
	}

	dummySalt = salt
	dummyDigest = digest
}

// VerifyPasswordTimingSafe behaves like VerifyPassword but burns a full
// hash computation even when no user row was found, so a login against an
// unknown email costs the same as one against a real account.
func VerifyPasswordTimingSafe(password string, salt, expectedDigest *string) bool {
	verifySalt := dummySalt
	verifyDigest := dummyDigest
	if salt != nil && expectedDigest != nil && *salt != "" {
		verifySalt = *salt
		verifyDigest = *expectedDigest
	}

	valid := VerifyPassword(verifySalt, password, verifyDigest)

	if salt == nil || expectedDigest == nil || *salt == "" {
		return false
	}

	return valid
}
