package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, CheckPassword(hash, "Secret123"))
	assert.False(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "Secret123"))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Empty(t, ValidatePasswordStrength("Secret123"))

	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "too short",
			password: "Ab1",
			want:     []string{"Password must be at least 8 characters long"},
		},
		{
			name:     "no lowercase",
			password: "SECRET123",
			want:     []string{"Password must contain at least one lowercase letter"},
		},
		{
			name:     "no uppercase",
			password: "secret123",
			want:     []string{"Password must contain at least one uppercase letter"},
		},
		{
			name:     "no digit",
			password: "Secretpass",
			want:     []string{"Password must contain at least one number"},
		},
		{
			name:     "empty collects every rule",
			password: "",
			want: []string{
				"Password must be at least 8 characters long",
				"Password must contain at least one lowercase letter",
				"Password must contain at least one uppercase letter",
				"Password must contain at least one number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePasswordStrength(tt.password))
		})
	}
}
