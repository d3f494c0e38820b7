package password_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HarshChauhan111/stream-sync-lite/internal/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, password.Verify("correct horse battery staple", hash))
	require.False(t, password.Verify("wrong password", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same input")
	require.NoError(t, err)
	second, err := password.Hash("same input")
	require.NoError(t, err)

	// bcrypt salts each hash, so identical inputs produce distinct hashes.
	require.NotEqual(t, first, second)
	require.True(t, password.Verify("same input", first))
	require.True(t, password.Verify("same input", second))
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	require.False(t, password.Verify("anything", "not-a-bcrypt-hash"))
	require.False(t, password.Verify("anything", ""))
}
