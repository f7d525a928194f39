package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)
	require.NotEqual(t, "Password123!", hash)

	require.True(t, VerifyPassword(hash, "Password123!"))
	require.False(t, VerifyPassword(hash, "password123!"))
	require.False(t, VerifyPassword("not-a-hash", "Password123!"))
}
