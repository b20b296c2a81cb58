package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, MinPasswordCost)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"),
				"hash should be in bcrypt format")
		})
	}
}

func TestHashPassword_ClampsCost(t *testing.T) {
	t.Parallel()

	t.Run("cost below minimum is raised", func(t *testing.T) {
		hash, err := HashPassword("secret", 1)
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		require.Equal(t, MinPasswordCost, cost)
	})

	t.Run("cost within range is honored", func(t *testing.T) {
		hash, err := HashPassword("secret", MinPasswordCost)
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		require.Equal(t, MinPasswordCost, cost)
	})
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	password := "samepassword"

	hash1, err := HashPassword(password, MinPasswordCost)
	require.NoError(t, err)
	hash2, err := HashPassword(password, MinPasswordCost)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.True(t, VerifyPassword(password, hash1))
	require.True(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-password", MinPasswordCost)
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		require.True(t, VerifyPassword("correct-password", hash))
	})

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated password", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword(tt.wrongPassword, hash))
		})
	}
}

func TestVerifyPassword_InvalidDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		digest string
	}{
		{"empty digest", ""},
		{"not a bcrypt hash", "plaintext"},
		{"wrong algorithm", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated digest", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword("any-password", tt.digest))
		})
	}
}
