package services

import (
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/runtime"
	"context"
	"log/slog"
	"net"
	"time"
)

var _ contract.ConnHandler = (*SessionHandler)(nil)

// SessionHandler owns one connection from accept to close:
// AUTHENTICATING, then ACTIVE until a read fails or /exit, then TERMINATED.
type SessionHandler struct {
	log          *slog.Logger
	auth         IAuthService
	chat         IChatService
	directory    *runtime.Directory
	groups       *runtime.GroupRegistry
	journal      contract.Journal
	bufferSize   int
	writeTimeout time.Duration
}

func NewSessionHandler(
	log *slog.Logger,
	auth IAuthService,
	chat IChatService,
	directory *runtime.Directory,
	groups *runtime.GroupRegistry,
	journal contract.Journal,
	bufferSize int,
	writeTimeout time.Duration,
) *SessionHandler {
	return &SessionHandler{
		log:          log,
		auth:         auth,
		chat:         chat,
		directory:    directory,
		groups:       groups,
		journal:      journal,
		bufferSize:   bufferSize,
		writeTimeout: writeTimeout,
	}
}

// Serve runs the session and always terminates it exactly once, whatever the
// exit path: failed login, disconnect, /exit or panic.
func (h *SessionHandler) Serve(ctx context.Context, conn net.Conn) {
	client := domain.NewClient(conn, h.writeTimeout)
	h.log.Debug("Session started", "client_id", client.ID, "remote_addr", client.RemoteAddr())
	defer h.terminate(client)

	username, err := h.auth.Authenticate(client)
	if err != nil {
		h.log.Debug("Authentication ended", "client_id", client.ID, "error", err)
		return
	}
	h.dispatchLoop(ctx, client, username)
}

func (h *SessionHandler) dispatchLoop(ctx context.Context, client *domain.Client, username string) {
	buf := make([]byte, h.bufferSize)
	for {
		line, err := client.ReadLine(buf)
		if err != nil {
			if ctx.Err() != nil {
				h.log.Debug("Session closed by shutdown", "username", username)
			} else {
				h.log.Debug("Session disconnected", "username", username, "error", err)
			}
			return
		}

		cmd := domain.ParseCommand(line)
		if cmd.Name == domain.CmdExit {
			h.log.Debug("Session exit requested", "username", username)
			return
		}

		reply := h.dispatch(client, cmd)
		if reply == "" {
			continue
		}
		if err := client.Send(reply); err != nil {
			h.log.Debug("Reply not delivered", "username", username, "error", err)
			return
		}
	}
}

// dispatch runs one command and returns the reply for the invoking session,
// empty when there is none.
func (h *SessionHandler) dispatch(client *domain.Client, cmd domain.Command) string {
	switch cmd.Name {
	case domain.CmdBroadcast, domain.CmdMsg, domain.CmdCreateGroup,
		domain.CmdJoinGroup, domain.CmdLeaveGroup, domain.CmdGroupMsg:
		if usage := cmd.Usage(); usage != "" {
			return usage
		}
	default:
		return domain.ReplyInvalidCommand
	}

	switch cmd.Name {
	case domain.CmdBroadcast:
		h.chat.Broadcast(client, cmd.Text)
		return ""
	case domain.CmdMsg:
		if err := h.chat.Direct(client, cmd.Target, cmd.Text); err != nil {
			return replyFor(err)
		}
		return ""
	case domain.CmdCreateGroup:
		if err := h.chat.CreateGroup(client, cmd.Target); err != nil {
			return replyFor(err)
		}
		return domain.ReplyGroupCreated(cmd.Target)
	case domain.CmdJoinGroup:
		if err := h.chat.JoinGroup(client, cmd.Target); err != nil {
			return replyFor(err)
		}
		return domain.ReplyGroupJoined(cmd.Target)
	case domain.CmdLeaveGroup:
		if err := h.chat.LeaveGroup(client, cmd.Target); err != nil {
			return replyFor(err)
		}
		return domain.ReplyGroupLeft(cmd.Target)
	default:
		if _, err := h.chat.GroupMessage(client, cmd.Target, cmd.Text); err != nil {
			if errors.Is(err, errors.ErrNotMember) {
				return domain.ReplyNotMemberOf(cmd.Target)
			}
			return replyFor(err)
		}
		return domain.ReplyGroupMessageSent(cmd.Target)
	}
}

func replyFor(err error) string {
	switch {
	case errors.Is(err, errors.ErrUserNotFound):
		return domain.ReplyUserNotFound
	case errors.Is(err, errors.ErrGroupExists):
		return domain.ReplyGroupExists
	case errors.Is(err, errors.ErrGroupNotFound):
		return domain.ReplyGroupNotFound
	case errors.Is(err, errors.ErrAlreadyMember):
		return domain.ReplyAlreadyMember
	case errors.Is(err, errors.ErrNotMember):
		return domain.ReplyNotPartOfGroup
	default:
		return domain.ReplyInvalidCommand
	}
}

// terminate removes every trace of the session and releases the connection.
func (h *SessionHandler) terminate(client *domain.Client) {
	if r := recover(); r != nil {
		h.log.Error("Session panicked", "client_id", client.ID, "panic", r)
	}

	username, registered := h.directory.Unregister(client)
	groups := h.groups.RemoveEverywhere(client)
	_ = client.Close()

	if !registered {
		return
	}
	h.log.Info("User logged out", "client_id", client.ID, "username", username, "groups", len(groups))
	if h.journal == nil {
		return
	}
	if err := h.journal.Record(domain.NewSessionRecord(client, username, domain.SessionLogout, "")); err != nil {
		h.log.Warn("Session journal write failed", "event", domain.SessionLogout, "error", err)
	}
}
