package services

import (
	"bufio"
	"chat-server/auth"
	"chat-server/domain"
	"chat-server/mocks"
	"chat-server/runtime"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = time.Second

type fixture struct {
	directory *runtime.Directory
	groups    *runtime.GroupRegistry
	chat      *ChatService
	journal   *mocks.MockJournal
	handler   *SessionHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockJournal(ctrl)
	journal.EXPECT().Record(gomock.Any()).Return(nil).AnyTimes()

	credentials := auth.NewCredentials(map[string]string{
		"alice": "alice-pw",
		"bob":   "bob-pw",
		"carol": "carol-pw",
	})
	directory := runtime.NewDirectory()
	groups := runtime.NewGroupRegistry(log)
	chat := NewChatService(log, directory, groups, nil)
	authService := NewAuthService(log, credentials, directory, chat, journal, 1024)
	handler := NewSessionHandler(log, authService, chat, directory, groups, journal, 1024, 0)

	return &fixture{directory: directory, groups: groups, chat: chat, journal: journal, handler: handler}
}

// peer is the client side of a session served over net.Pipe.
type peer struct {
	conn  net.Conn
	lines chan string
}

func newPeer(t *testing.T, conn net.Conn) *peer {
	t.Helper()
	p := &peer{conn: conn, lines: make(chan string, 64)}
	go func() {
		defer close(p.lines)
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			p.lines <- strings.TrimSuffix(line, "\n")
		}
	}()
	t.Cleanup(func() { _ = conn.Close() })
	return p
}

func (f *fixture) connect(t *testing.T) *peer {
	t.Helper()
	server, client := net.Pipe()
	go f.handler.Serve(context.Background(), server)
	return newPeer(t, client)
}

func (f *fixture) login(t *testing.T, username, password string) *peer {
	t.Helper()
	p := f.connect(t)
	p.expect(t, domain.PromptUsername)
	p.send(t, username+"\n")
	p.expect(t, domain.PromptPassword)
	p.send(t, password+"\n")
	p.expect(t, domain.ReplyWelcome)
	return p
}

func (p *peer) send(t *testing.T, line string) {
	t.Helper()
	_, err := p.conn.Write([]byte(line))
	require.NoError(t, err)
}

func (p *peer) expect(t *testing.T, want string) {
	t.Helper()
	select {
	case got, ok := <-p.lines:
		require.True(t, ok, "connection closed while waiting for %q", want)
		require.Equal(t, want, got)
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func (p *peer) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case got, ok := <-p.lines:
		if ok {
			t.Fatalf("unexpected line %q", got)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func (p *peer) expectClosed(t *testing.T) {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case got, ok := <-p.lines:
			if !ok {
				return
			}
			t.Fatalf("unexpected line %q before close", got)
		case <-deadline:
			t.Fatal("connection was not closed")
		}
	}
}

func (f *fixture) waitLoggedOut(t *testing.T, username string) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, ok := f.directory.LookupByUsername(username)
		return !ok
	}, waitTimeout, 10*time.Millisecond)
}
