package password_test

import (
	"strings"
	"testing"

	"atoll/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("empty password", func(t *testing.T) {
		_, err := password.Hash("")
		assert.ErrorIs(t, err, password.ErrEmptyPassword)
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("a", 100))
		assert.ErrorIs(t, err, password.ErrHashingPassword)
	})

	t.Run("salted hashes differ", func(t *testing.T) {
		first, err := password.Hash("lagoon2025")
		require.NoError(t, err)

		second, err := password.Hash("lagoon2025")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NotEqual(t, "lagoon2025", first)
		assert.True(t, strings.HasPrefix(first, "$2a$"))
	})
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("reef-villa-7")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "matching password", password: "reef-villa-7", hash: hash},
		{name: "wrong password", password: "reef-villa-8", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case matters", password: "REEF-VILLA-7", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "reef-villa-7", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "reef-villa-7", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "letters and digits", password: "lagoon2025", valid: true},
		{name: "unicode letters", password: "пароль1234", valid: true},
		{name: "too short", password: "ab12", valid: false},
		{name: "no digit", password: "sunsetvilla", valid: false},
		{name: "no letter", password: "1234567890", valid: false},
		{name: "too long", password: strings.Repeat("a1", 40), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.CheckStrength(tt.password)

			if tt.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, password.ErrWeakPassword)
		})
	}
}
