package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor for stored credentials. Raising it
// invalidates nothing (old hashes keep their embedded cost) but makes new
// hashes slower to brute force.
const PasswordCost = 12

// ErrHashMismatch is returned by VerifyPassword when the password does not
// match the stored hash.
var ErrHashMismatch = errors.New("cryptox: password does not match")

// HashPassword hashes a plaintext password with bcrypt. The salt is generated
// per call and embedded in the output, so no separate salt storage is needed.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch returns ErrHashMismatch; a malformed stored hash is a different
// error and indicates corrupted data, not a bad login attempt.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrHashMismatch
	}
	return fmt.Errorf("cryptox: malformed password hash: %w", err)
}
