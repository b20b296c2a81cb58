package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces hex output of twice the byte length", func(t *testing.T) {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.Len(t, token, TokenSize256*2)

		_, err = hex.DecodeString(token)
		require.NoError(t, err, "token should be valid hex")
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)

		_, err = GenerateToken(-1)
		require.Error(t, err)
	})
}

func TestGenerateToken_Uniqueness(t *testing.T) {
	t.Parallel()

	const count = 100
	seen := make(map[string]bool, count)

	for range count {
		token, err := GenerateToken(TokenSize128)
		require.NoError(t, err)
		require.NotContains(t, seen, token, "duplicate token generated")
		seen[token] = true
	}
}
