package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "minimum length", username: "alice1", want: true},
		{name: "maximum length", username: "abcdefghijklmno", want: true},
		{name: "mid length", username: "alice_smith", want: true},
		{name: "too short", username: "alice", want: false},
		{name: "too long", username: "abcdefghijklmnop", want: false},
		{name: "empty", username: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "strong mixed password", password: "Tr0ub4dor&3xyz", want: true},
		{name: "long passphrase", password: "correct horse battery staple", want: true},
		{name: "short lowercase", password: "abc", want: false},
		{name: "common digits", password: "12345678", want: false},
		{name: "empty", password: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password, DefaultMinEntropy))
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Tr0ub4dor&3xyz", 4) // low cost keeps the test fast
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Tr0ub4dor", "hash must not embed the plain text")

	assert.True(t, VerifyPassword(hash, "Tr0ub4dor&3xyz"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword("not a bcrypt hash", "Tr0ub4dor&3xyz"))
}
