package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionEvent string

const (
	SessionLogin    SessionEvent = "login"
	SessionRejected SessionEvent = "rejected"
	SessionLogout   SessionEvent = "logout"
)

// SessionRecord is one entry of the session journal.
type SessionRecord struct {
	ID         uuid.UUID    `json:"id"`
	ClientID   uuid.UUID    `json:"client_id"`
	Username   string       `json:"username"`
	RemoteAddr string       `json:"remote_addr"`
	Event      SessionEvent `json:"event"`
	Reason     string       `json:"reason,omitempty"`
	At         time.Time    `json:"at"`
}

func NewSessionRecord(client *Client, username string, evt SessionEvent, reason string) SessionRecord {
	return SessionRecord{
		ID:         uuid.New(),
		ClientID:   client.ID,
		Username:   username,
		RemoteAddr: client.RemoteAddr(),
		Event:      evt,
		Reason:     reason,
		At:         time.Now().UTC(),
	}
}
