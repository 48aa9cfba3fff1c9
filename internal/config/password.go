package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds
const (
	DefaultBcryptCost = 12
	MinBcryptCost     = 10
	MaxBcryptCost     = 14
)

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int `json:"bcrypt_cost,omitempty" yaml:"bcrypt_cost,omitempty"`
	// Pepper is an optional global secret appended before hashing; env only
	Pepper string `json:"-" yaml:"-"`
}

// Validate checks the bcrypt cost range
func (c *PasswordConfig) Validate() error {
	if c.BcryptCost < MinBcryptCost || c.BcryptCost > MaxBcryptCost {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", c.BcryptCost, MinBcryptCost, MaxBcryptCost)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
