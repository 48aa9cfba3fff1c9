package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordConfig_Validate(t *testing.T) {
	for _, cost := range []int{MinBcryptCost, DefaultBcryptCost, MaxBcryptCost} {
		assert.NoError(t, (&PasswordConfig{BcryptCost: cost}).Validate())
	}
	for _, cost := range []int{0, 9, 15} {
		err := (&PasswordConfig{BcryptCost: cost}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bcrypt cost out of range")
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))
}

func TestPasswordConfig_SaltUniqueness(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	first, err := cfg.HashPassword("same")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("same", first))
	assert.True(t, cfg.VerifyPassword("same", second))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-one"}

	hash, err := peppered.HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("secret", hash))

	rotated := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-two"}
	assert.False(t, rotated.VerifyPassword("secret", hash))

	plain := &PasswordConfig{BcryptCost: MinBcryptCost}
	assert.False(t, plain.VerifyPassword("secret", hash))
}

func TestPasswordConfig_InvalidCost(t *testing.T) {
	_, err := (&PasswordConfig{BcryptCost: 3}).HashPassword("secret")
	assert.Error(t, err)
}

func TestPasswordConfig_TooLong(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	_, err := cfg.HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func BenchmarkHashPassword(b *testing.B) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}
	for i := 0; i < b.N; i++ {
		_, _ = cfg.HashPassword("benchmark-password")
	}
}
