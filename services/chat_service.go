package services

import (
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/runtime"
	"log/slog"
)

type IChatService interface {
	Broadcast(sender *domain.Client, text string) int
	Announce(sender *domain.Client, text string) int
	Direct(sender *domain.Client, receiver, text string) error
	GroupMessage(sender *domain.Client, group, text string) (int, error)
	CreateGroup(client *domain.Client, group string) error
	JoinGroup(client *domain.Client, group string) error
	LeaveGroup(client *domain.Client, group string) error
}

// ChatService delivers chat text over the three channels: broadcast, direct
// and group. Targets are resolved under the owning structure's lock and
// written to after it is released. Delivery is best-effort.
type ChatService struct {
	log       *slog.Logger
	directory *runtime.Directory
	groups    *runtime.GroupRegistry
	censor    contract.Censor
}

// NewChatService builds the delivery service. censor may be nil.
func NewChatService(log *slog.Logger, directory *runtime.Directory, groups *runtime.GroupRegistry, censor contract.Censor) *ChatService {
	return &ChatService{log: log, directory: directory, groups: groups, censor: censor}
}

// Broadcast sends text, server tagged, to every session except the sender.
func (s *ChatService) Broadcast(sender *domain.Client, text string) int {
	return s.fanOut(sender, domain.ServerLine(s.moderate(sender, text)))
}

// Announce is Broadcast for server generated text, which is never censored.
func (s *ChatService) Announce(sender *domain.Client, text string) int {
	return s.fanOut(sender, domain.ServerLine(text))
}

// Direct delivers text to receiver only. It is not echoed to the sender.
func (s *ChatService) Direct(sender *domain.Client, receiver, text string) error {
	target, ok := s.directory.LookupByUsername(receiver)
	if !ok {
		return errors.ErrUserNotFound
	}
	from, _ := s.directory.LookupByClient(sender)
	if err := target.Send(domain.DirectLine(from, s.moderate(sender, text))); err != nil {
		s.log.Debug("Direct delivery failed", "client_id", target.ID, "username", receiver, "error", err)
	}
	return nil
}

func (s *ChatService) GroupMessage(sender *domain.Client, group, text string) (int, error) {
	return s.groups.Send(group, sender, s.moderate(sender, text))
}

func (s *ChatService) CreateGroup(client *domain.Client, group string) error {
	return s.groups.Create(group, client)
}

func (s *ChatService) JoinGroup(client *domain.Client, group string) error {
	return s.groups.Join(group, client)
}

func (s *ChatService) LeaveGroup(client *domain.Client, group string) error {
	return s.groups.Leave(group, client)
}

func (s *ChatService) fanOut(sender *domain.Client, line string) int {
	delivered := 0
	for _, target := range s.directory.AllExcept(sender) {
		if err := target.Send(line); err != nil {
			s.log.Debug("Broadcast delivery failed", "client_id", target.ID, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (s *ChatService) moderate(sender *domain.Client, text string) string {
	if s.censor == nil {
		return text
	}
	censored, words := s.censor.Censor(text)
	if len(words) > 0 {
		s.log.Info("Message censored", "client_id", sender.ID, "words", words)
	}
	return censored
}
