package security

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hides how stored passwords are compared so the scheme can
// change without touching the login control flow.
type PasswordVerifier interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// PlainVerifier reproduces the upstream contract: the stored value is the
// password itself. Kept only for compatibility; a known defect.
type PlainVerifier struct{}

func (PlainVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlainVerifier) Verify(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("security.BcryptVerifier.Hash: %w", err)
	}
	return string(hashed), nil
}

func (v BcryptVerifier) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// NewPasswordVerifier selects the verifier for the configured scheme,
// defaulting to the plain scheme for upstream compatibility.
func NewPasswordVerifier(scheme string) PasswordVerifier {
	if scheme == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlainVerifier{}
}
