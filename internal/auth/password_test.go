package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/social-platform/internal/auth"
)

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, auth.ComparePassword(first, "secret"))
	assert.NoError(t, auth.ComparePassword(second, "secret"))
}

func TestComparePasswordFailsQuietly(t *testing.T) {
	hash, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.Error(t, auth.ComparePassword(hash, "wrong"))
	assert.Error(t, auth.ComparePassword("not-a-hash", "secret"))
	assert.Error(t, auth.ComparePassword("", ""))
}
