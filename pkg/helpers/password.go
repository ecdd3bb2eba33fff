package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptHash is returned when a stored digest is not a bcrypt hash.
var ErrCorruptHash = errors.New("stored password hash is corrupt")

// PasswordHasher hashes passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost}
}

// Hash hashes the plain text password using a fresh salt
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A mismatch is not an error.
func (h *PasswordHasher) Verify(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCorruptHash
	}
}

// HashPassword hashes with bcrypt.DefaultCost; used by the seed command.
func HashPassword(plain string) (string, error) {
	return NewPasswordHasher(bcrypt.DefaultCost).Hash(plain)
}
