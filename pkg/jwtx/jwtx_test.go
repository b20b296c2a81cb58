package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewSignerHS256_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256([]byte("too-short"))
	require.Error(t, err)

	_, err = NewSignerHS256(testSecret)
	require.NoError(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := NewVerifierHS256(testSecret)

	claims := NewSessionClaims("user-123", DefaultSessionTTL, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", parsed.Subject)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := NewVerifierHS256(testSecret)

	token, err := signer.Sign(NewSessionClaims("user-123", DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	raw := []byte(token)
	raw[len(raw)-2] ^= 0x01

	_, err = verifier.Verify(string(raw))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	otherSecret := []byte("ffffffffffffffffffffffffffffffff")
	verifier := NewVerifierHS256(otherSecret)

	token, err := signer.Sign(NewSessionClaims("user-123", DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := NewVerifierHS256(testSecret)

	// Issue a token whose lifetime already elapsed.
	backdated := time.Now().UTC().Add(-2 * time.Hour)
	token, err := signer.Sign(NewSessionClaims("user-123", time.Hour, backdated))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier := NewVerifierHS256(testSecret)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewSessionClaims(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	claims := NewSessionClaims("user-123", time.Hour, now)

	require.Equal(t, "user-123", claims.Subject)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
	require.NoError(t, claims.ValidateExpiry())
}
