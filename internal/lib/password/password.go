// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest plaintext bcrypt accepts, in bytes.
const MaxLength = 72

var (
	ErrCorruptCredential = errors.New("corrupt credential")
	ErrInvalidCost       = errors.New("invalid bcrypt cost")
	ErrTooLong           = errors.New("password too long")
)

type Hasher struct {
	cost int
}

// New returns a Hasher using the given bcrypt cost. Zero selects bcrypt.DefaultCost.
func New(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	return &Hasher{cost: cost}, nil
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	const op = "lib.password.Hash"

	if len(plaintext) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(b), nil
}

// Verify reports whether plaintext matches hash. A mismatch is not an error;
// a hash that bcrypt cannot parse is ErrCorruptCredential.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	const op = "lib.password.Verify"

	// nothing longer than MaxLength can have been hashed
	if len(plaintext) > MaxLength {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %v", op, ErrCorruptCredential, err)
	}
}
