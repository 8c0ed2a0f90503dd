// Package password provides bcrypt hashing and verification for user
// credentials. The salt is generated per call and embedded in the hash blob.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a valid bcrypt hash of a throwaway value. Login paths compare
// against it when the username is unknown so that a request for an absent
// user costs the same as one for a present user.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hash returns the bcrypt hash of the plaintext password with a random salt.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
// Malformed or truncated hashes return false rather than an error, so legacy
// hash formats cannot crash the login path.
func Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
