package auth

import (
	"bufio"
	"chat-server/contract"
	"chat-server/errors"
	"crypto/subtle"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var _ contract.CredentialStore = (*Credentials)(nil)

// Credentials is the read-only username to password mapping consulted by the
// authentication gate. It is populated once at startup and never mutated.
type Credentials struct {
	passwords map[string]string
}

// LoadCredentials reads one "username:password" pair per line.
// The line is split on the first colon only, so passwords may contain colons.
// Blank lines are skipped and a trailing carriage return is dropped.
// A later duplicate username overrides the earlier one.
func LoadCredentials(r io.Reader) (*Credentials, error) {
	passwords := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		username, password, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d", errors.ErrInvalidCredentialLine, lineNumber)
		}
		passwords[username] = password
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Credentials{passwords: passwords}, nil
}

func NewCredentials(passwords map[string]string) *Credentials {
	copied := make(map[string]string, len(passwords))
	for username, password := range passwords {
		copied[username] = password
	}
	return &Credentials{passwords: copied}
}

// Verify never tells an unknown username apart from a wrong password.
func (c *Credentials) Verify(username, password string) bool {
	stored, ok := c.passwords[username]
	if !ok {
		return false
	}
	if IsHashed(stored) {
		match, err := ComparePassword(password, stored)
		return err == nil && match
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (c *Credentials) Len() int {
	return len(c.passwords)
}

type CredentialRequest struct {
	Username string `validate:"required,max=64,excludesall=: \t"`
	Password string `validate:"required"`
}

// CredentialLine validates the request and formats it as a line of the
// credential file, hashing the password with Argon2id.
func CredentialLine(req CredentialRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidUsername, err)
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", err
	}
	return req.Username + ":" + hash, nil
}
