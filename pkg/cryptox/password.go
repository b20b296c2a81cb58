package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing cost bounds. bcrypt work roughly doubles per increment,
// so anything above 15 makes login latency unreasonable.
const (
	MinPasswordCost     = 10
	MaxPasswordCost     = 15
	DefaultPasswordCost = 12
)

// HashPassword produces a salted bcrypt digest of the given plaintext.
// The cost is clamped into [MinPasswordCost, MaxPasswordCost] so a
// misconfigured deployment can't silently store weak hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinPasswordCost {
		cost = MinPasswordCost
	}
	if cost > MaxPasswordCost {
		cost = MaxPasswordCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext matches the bcrypt digest.
// A mismatch and a corrupt digest both report false; callers must not be
// able to tell the two apart.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
