package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "cmsapi/internal/errors"
)

const (
	// MinPasswordCost is the lowest bcrypt work factor the service accepts.
	MinPasswordCost = 10
	// MaxPasswordBytes is the longest input bcrypt hashes.
	MaxPasswordBytes = 72
)

// PasswordHasher hashes and verifies user passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher. Costs below MinPasswordCost are raised
// to it.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinPasswordCost {
		cost = MinPasswordCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the effective bcrypt cost.
func (h *PasswordHasher) Cost() int { return h.cost }

// Hash returns the bcrypt hash of plain. Passwords over MaxPasswordBytes
// fail with ErrValidation.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	var b []byte
	err := bcrypt.ErrPasswordTooLong
	if len(plain) <= MaxPasswordBytes {
		b, err = bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	}
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrValidation, MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify safely compares a bcrypt hash with a plain password.
func (h *PasswordHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
