package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers signature mismatch, malformed payloads and
	// any other structural failure. No partial acceptance.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrExpired is kept distinct from ErrInvalidToken so callers can
	// log why a session died, even if they surface the same response.
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a session token and gives you back the claims if
// it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Verifier validates tokens signed with the shared HMAC secret.
type HS256Verifier struct {
	secret []byte
}

// NewVerifierHS256 creates a verifier for the same secret the signer uses.
func NewVerifierHS256(secret []byte) *HS256Verifier {
	return &HS256Verifier{secret: secret}
}

// Verify parses and validates the token string and returns its claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	// The parser already checks exp/nbf, but we re-validate so the
	// distinction between expired and invalid survives any parser
	// configuration change.
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
