package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt silently truncates inputs past 72 bytes; reject instead so login
	// behavior stays consistent.
	bcryptMaxPasswordBytes = 72
	minPasswordChars       = 8
)

var errPasswordPolicy = errors.New("password policy")

// HashPassword validates and hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: password required", errPasswordPolicy)
	}
	if utf8.RuneCountInString(plain) < minPasswordChars {
		return "", fmt.Errorf("%w: password must be at least %d characters", errPasswordPolicy, minPasswordChars)
	}
	if len(plain) > bcryptMaxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", errPasswordPolicy, bcryptMaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IsPasswordValidationError distinguishes policy rejections (safe to echo to
// the client) from internal hashing failures.
func IsPasswordValidationError(err error) bool {
	return errors.Is(err, errPasswordPolicy)
}

func ComparePasswordHash(hash string, plain string) error {
	if plain == "" {
		return fmt.Errorf("password required")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
