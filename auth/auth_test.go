package auth

import (
	"chat-server/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MyPassw0rdIsStr0ng!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(IsHashed(hash))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("WrongPassword", hash)
	req.NoError(err)
	req.False(match)
}

func TestComparePassword_Invalid_Hash(t *testing.T) {
	req := require.New(t)
	_, err := ComparePassword("secret", "$argon2id$broken")
	req.ErrorIs(err, errors.ErrInvalidHash)
}

func TestLoadCredentials(t *testing.T) {
	req := require.New(t)
	content := "alice:secret\r\n\nbob:pa:ss:word\ncarol:\n"

	credentials, err := LoadCredentials(strings.NewReader(content))
	req.NoError(err)
	req.Equal(3, credentials.Len())

	req.True(credentials.Verify("alice", "secret"))
	req.True(credentials.Verify("bob", "pa:ss:word"))
	req.False(credentials.Verify("carol", "anything"))
}

func TestLoadCredentials_Rejects_Line_Without_Colon(t *testing.T) {
	req := require.New(t)
	_, err := LoadCredentials(strings.NewReader("alice:secret\nmalformed\n"))
	req.ErrorIs(err, errors.ErrInvalidCredentialLine)
	req.ErrorContains(err, "line 2")
}

func TestCredentials_Verify(t *testing.T) {
	req := require.New(t)
	hash, err := HashPassword("hashed-secret")
	req.NoError(err)
	credentials := NewCredentials(map[string]string{
		"alice": "secret",
		"bob":   hash,
	})

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"Plain text match", "alice", "secret", true},
		{"Plain text mismatch", "alice", "Secret", false},
		{"Password is not trimmed", "alice", "secret ", false},
		{"Hashed match", "bob", "hashed-secret", true},
		{"Hashed mismatch", "bob", "secret", false},
		{"Unknown user", "mallory", "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, credentials.Verify(tt.username, tt.password))
		})
	}
}

func TestCredentialLine(t *testing.T) {
	req := require.New(t)

	line, err := CredentialLine(CredentialRequest{Username: "alice", Password: "secret"})
	req.NoError(err)

	credentials, err := LoadCredentials(strings.NewReader(line))
	req.NoError(err)
	req.True(credentials.Verify("alice", "secret"))

	_, err = CredentialLine(CredentialRequest{Username: "al:ice", Password: "secret"})
	req.ErrorIs(err, errors.ErrInvalidUsername)

	_, err = CredentialLine(CredentialRequest{Username: "alice", Password: ""})
	req.ErrorIs(err, errors.ErrInvalidUsername)
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
