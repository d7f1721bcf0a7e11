//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-server/domain"
	"context"
	"net"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ConnHandler owns an accepted connection until Serve returns.
type ConnHandler interface {
	Serve(ctx context.Context, conn net.Conn)
}

// CredentialStore is the read-only username to password mapping.
type CredentialStore interface {
	Verify(username, password string) bool
}

// Journal records session lifecycle events.
type Journal interface {
	Record(record domain.SessionRecord) error
}

// Censor rewrites outbound chat text and reports the words it masked.
type Censor interface {
	Censor(content string) (string, []string)
}
