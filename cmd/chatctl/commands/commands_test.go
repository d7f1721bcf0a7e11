package commands

import (
	"bytes"
	"chat-server/auth"
	"chat-server/domain"
	"chat-server/repositories"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHashCmd(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"hash", "alice", "secret"})

	req.NoError(root.Execute())

	credentials, err := auth.LoadCredentials(strings.NewReader(out.String()))
	req.NoError(err)
	req.True(credentials.Verify("alice", "secret"))
}

func TestHashCmd_Rejects_Colon_In_Username(t *testing.T) {
	req := require.New(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"hash", "al:ice", "secret"})

	req.Error(root.Execute())
}

func TestJournalCmd(t *testing.T) {
	req := require.New(t)
	path := t.TempDir()

	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	repository := repositories.NewJournalRepository(db, logs.GetLoggerFromLevel(slog.LevelError))
	at := time.Now().UTC()
	// Given a rejection older than the newest login
	req.NoError(repository.Record(domain.SessionRecord{ID: uuid.New(), Username: "bob", Event: domain.SessionRejected, Reason: "invalid credentials", At: at}))
	req.NoError(repository.Record(domain.SessionRecord{ID: uuid.New(), Username: "alice", Event: domain.SessionLogin, At: at.Add(time.Second)}))
	req.NoError(db.Close())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"journal", "--path", path, "--event", "rejected", "-n", "1"})

	// Then the limit counts rejected events only
	req.NoError(root.Execute())
	req.Contains(out.String(), "bob")
	req.Contains(out.String(), "invalid credentials")
	req.NotContains(out.String(), "alice")
}
