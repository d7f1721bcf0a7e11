package repositories

import (
	"chat-server/contract"
	"chat-server/domain"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
)

const journalPrefix = "session:"

var _ contract.Journal = (*JournalRepository)(nil)

// JournalRepository keeps an append-only trail of login, rejected login and
// logout events in BadgerDB. Message contents are never stored.
type JournalRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewJournalRepository(db *badger.DB, log *slog.Logger) *JournalRepository {
	return &JournalRepository{db: db, log: log}
}

// Record persists a session event.
// The key is formatted as "session:{timestamp_padded}:{uuid}" so a prefix scan
// returns events in chronological order, the uuid breaking ties between two
// events of the same nanosecond.
func (j *JournalRepository) Record(record domain.SessionRecord) error {
	key := journalKey(record)
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns the most recent session events accepted by keep, newest first.
// The limit counts kept events only. A nil keep accepts everything and a
// limit of zero or less returns everything.
func (j *JournalRepository) List(limit int, keep func(domain.SessionRecord) bool) ([]domain.SessionRecord, error) {
	var records []domain.SessionRecord
	err := j.db.View(func(txn *badger.Txn) error {
		prefix := []byte(journalPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk backwards
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				j.log.Debug(fmt.Sprintf("Maximum of %d session events reached", limit))
				break
			}
			var record domain.SessionRecord
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &record)
			})
			if err != nil {
				return err
			}
			if keep != nil && !keep(record) {
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func journalKey(record domain.SessionRecord) string {
	return fmt.Sprintf("%s%019d:%s", journalPrefix, record.At.UnixNano(), record.ID)
}

// JournalMapper renders a session event in the badger debug inspector.
func JournalMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var record domain.SessionRecord
	if err := json.Unmarshal(val, &record); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = string(record.Event)
	row.Detail = fmt.Sprintf("%s from %s", record.Username, record.RemoteAddr)
	if record.Reason != "" {
		row.Detail += " (" + record.Reason + ")"
	}
	return row
}
