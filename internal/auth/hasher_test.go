package auth_test

import (
	"testing"

	"github.com/avaldez/ecommerce-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	hash, err := hasher.Hash("Secr3t!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Secr3t!", hash)

	assert.True(t, hasher.Verify("Secr3t!", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}

func TestBcryptHasher_SaltUniqueness(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	// Each hash carries its own random salt
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "garbage", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("anything", tt.hash))
		})
	}
}
