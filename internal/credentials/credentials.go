// Package credentials is the credential manager: one-way password hashing
// and verification. It holds no state; bcrypt salts internally, so hashing
// the same password twice yields different outputs.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential is returned when a stored hash is not a valid bcrypt
// hash. A plain mismatch is not an error.
var ErrCorruptCredential = errors.New("corrupt stored credential")

// Hash produces a salted bcrypt hash of the password.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. Returns
// ErrCorruptCredential when the stored hash cannot be parsed.
func Verify(password, hashedPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
}
