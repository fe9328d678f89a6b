package security_test

import (
	"strings"
	"testing"

	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))

	assert.NoError(t, h.Compare(digest, "pw1"))
	assert.ErrorIs(t, h.Compare(digest, "wrong"), security.ErrPasswordMismatch)
}

func TestBcryptHasherSalts(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	err := h.Compare("not-a-bcrypt-digest", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, security.ErrPasswordMismatch)
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	h := security.NewBcryptHasher(99)

	digest, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, security.DefaultBcryptCost, cost)
}

func TestBcryptHasherRejectsLongPasswords(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", security.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, security.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", security.MaxPasswordBytes))
	assert.NoError(t, err)
}
