package repositories

import (
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// ReadMarkRepository remembers, per conversation, how many messages the user has seen.
type ReadMarkRepository struct {
	db *badger.DB
}

func NewReadMarkRepository(db *badger.DB) ReadMarkRepository {
	return ReadMarkRepository{db: db}
}

// MarkRead records count as seen. A mark never decreases.
func (r ReadMarkRepository) MarkRead(key string, count int) error {
	if count < 0 {
		count = 0
	}
	return r.db.Update(func(txn *badger.Txn) error {
		current, err := lastSeen(txn, key)
		if err != nil {
			return err
		}
		if uint64(count) <= current {
			return nil
		}
		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(count))
		return txn.Set(readMarkKey(key), value)
	})
}

// LastSeen returns 0 for a conversation never marked.
func (r ReadMarkRepository) LastSeen(key string) (int, error) {
	var seen uint64
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		seen, err = lastSeen(txn, key)
		return err
	})
	return int(seen), err
}

// All returns every recorded mark keyed by conversation.
func (r ReadMarkRepository) All() (map[string]int, error) {
	marks := make(map[string]int)
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(readMarkPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(value []byte) error {
				if len(value) == 8 {
					marks[string(item.Key()[len(prefix):])] = int(binary.BigEndian.Uint64(value))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return marks, err
}

func lastSeen(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get(readMarkKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seen uint64
	err = item.Value(func(value []byte) error {
		if len(value) == 8 {
			seen = binary.BigEndian.Uint64(value)
		}
		return nil
	})
	return seen, err
}

const readMarkPrefix = "read:"

func readMarkKey(key string) []byte {
	return []byte(readMarkPrefix + key)
}

// OpenInMemory opens a badger database that lives only as long as the process.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
}

// Open opens (or creates) the badger database at path.
func Open(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
}
