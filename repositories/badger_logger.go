package repositories

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ badger.Logger = (*badgerLogger)(nil)

// badgerLogger routes BadgerDB's printf-style logs to the application's slog.Logger,
// tagging every entry with the component name.
type badgerLogger struct {
	log *slog.Logger
}

func NewBadgerLogger(log *slog.Logger) badger.Logger {
	return &badgerLogger{log: log.With("component", "badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(clean(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(clean(format, args))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info(clean(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(clean(format, args))
}

// badger terminates most messages with a newline
func clean(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
