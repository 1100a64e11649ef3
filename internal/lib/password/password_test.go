package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()

	h, err := New(bcrypt.MinCost)
	require.NoError(t, err)

	return h
}

func TestHashVerify(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	for _, plain := range []string{"secret", "pässwörd", " ", strings.Repeat("x", MaxLength)} {
		hash, err := h.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash)

		ok, err := h.Verify(plain, hash)
		require.NoError(t, err)
		assert.True(t, ok, "plaintext %q must verify against its own hash", plain)
	}
}

func TestVerifyMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	ok, err := h.Verify("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyCorruptHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	for _, hash := range []string{"", "plain-text", "$2a$99$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234"} {
		ok, err := h.Verify("secret", hash)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrCorruptCredential), "hash %q: got %v", hash, err)
	}
}

func TestNewCost(t *testing.T) {
	t.Parallel()

	h, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	_, err = New(bcrypt.MaxCost + 1)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = New(1)
	assert.ErrorIs(t, err, ErrInvalidCost)
}

func TestHashTooLong(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("x", MaxLength+1))
	assert.ErrorIs(t, err, ErrTooLong)

	// 72 runes but more than 72 bytes
	_, err = h.Hash(strings.Repeat("é", MaxLength))
	assert.ErrorIs(t, err, ErrTooLong)

	hash, err := h.Hash(strings.Repeat("x", MaxLength))
	require.NoError(t, err)

	ok, err := h.Verify(strings.Repeat("x", MaxLength+1), hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
