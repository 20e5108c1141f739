package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hashed)
	require.NotEmpty(t, hashed)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)

	require.True(t, CheckPassword(hashed, "secret123"))
	require.False(t, CheckPassword(hashed, "wrong"))
	require.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	// bcrypt salts every hash
	require.NotEqual(t, first, second)
}
