package errors

import (
	"errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	ErrPeerDisconnected      = fmt.Errorf("peer disconnected")
	ErrAlreadyLoggedIn       = fmt.Errorf("user is already logged in")
	ErrInvalidCredentials    = fmt.Errorf("invalid credentials")
	ErrInvalidCredentialLine = fmt.Errorf("invalid credential line")
	ErrClientRegistered      = fmt.Errorf("connection already bound to a session")
	ErrUserNotFound          = fmt.Errorf("user not found")
	ErrInvalidHash           = fmt.Errorf("invalid hash format")
	ErrInvalidUsername       = fmt.Errorf("invalid username")

	ErrGroupExists   = fmt.Errorf("group already exists")
	ErrGroupNotFound = fmt.Errorf("group does not exist")
	ErrAlreadyMember = fmt.Errorf("already a member of the group")
	ErrNotMember     = fmt.Errorf("not a member of the group")

	ErrInvalidConfig = fmt.Errorf("invalid configuration")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
