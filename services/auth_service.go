package services

import (
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/runtime"
	"log/slog"
	"strings"
)

type IAuthService interface {
	Authenticate(client *domain.Client) (string, error)
}

// AuthService runs the login handshake of a freshly accepted connection.
type AuthService struct {
	log         *slog.Logger
	credentials contract.CredentialStore
	directory   *runtime.Directory
	chat        IChatService
	journal     contract.Journal
	bufferSize  int
}

func NewAuthService(
	log *slog.Logger,
	credentials contract.CredentialStore,
	directory *runtime.Directory,
	chat IChatService,
	journal contract.Journal,
	bufferSize int,
) *AuthService {
	return &AuthService{
		log:         log,
		credentials: credentials,
		directory:   directory,
		chat:        chat,
		journal:     journal,
		bufferSize:  bufferSize,
	}
}

// Authenticate prompts for a username and a password and, on success,
// registers the session in the directory and announces it to everyone else.
// The username is trimmed, the password loses its line terminator only.
// An unknown user and a wrong password get the same reply.
// On any error the caller must close the connection, nothing was registered.
func (s *AuthService) Authenticate(client *domain.Client) (string, error) {
	buf := make([]byte, s.bufferSize)

	if err := client.Send(domain.PromptUsername); err != nil {
		return "", err
	}
	line, err := client.ReadLine(buf)
	if err != nil {
		return "", err
	}
	username := strings.TrimSpace(line)

	// Early check, spares a password prompt. Register below is the authority.
	if _, ok := s.directory.LookupByUsername(username); ok {
		return "", s.reject(client, username, errors.ErrAlreadyLoggedIn)
	}

	if err := client.Send(domain.PromptPassword); err != nil {
		return "", err
	}
	line, err = client.ReadLine(buf)
	if err != nil {
		return "", err
	}
	password := trimLineTerminator(line)

	if !s.credentials.Verify(username, password) {
		return "", s.reject(client, username, errors.ErrInvalidCredentials)
	}

	if err := s.directory.Register(username, client); err != nil {
		return "", s.reject(client, username, err)
	}

	s.log.Info("User logged in", "client_id", client.ID, "username", username, "remote_addr", client.RemoteAddr())
	s.record(domain.NewSessionRecord(client, username, domain.SessionLogin, ""))

	if err := client.Send(domain.ReplyWelcome); err != nil {
		s.log.Debug("Welcome not delivered", "client_id", client.ID, "error", err)
	}
	s.chat.Announce(client, domain.JoinedAnnouncement(username))
	return username, nil
}

func (s *AuthService) reject(client *domain.Client, username string, cause error) error {
	reply := domain.ReplyAuthFailed
	if errors.Is(cause, errors.ErrAlreadyLoggedIn) {
		reply = domain.ReplyAlreadyLoggedIn
	}
	if err := client.Send(reply); err != nil {
		s.log.Debug("Rejection not delivered", "client_id", client.ID, "error", err)
	}
	s.log.Debug("Login rejected", "client_id", client.ID, "username", username, "error", cause)
	s.record(domain.NewSessionRecord(client, username, domain.SessionRejected, cause.Error()))
	return cause
}

func (s *AuthService) record(record domain.SessionRecord) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(record); err != nil {
		s.log.Warn("Session journal write failed", "event", record.Event, "error", err)
	}
}

func trimLineTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
