package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type StoredMessage struct {
	ID         uuid.UUID `json:"id"`
	Room       string    `json:"room"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	At         time.Time `json:"at"`
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// StoreMessage persists a message under "msg:{room}:{timestamp_padded}:{uuid}".
// The 19-digit zero padding keeps lexicographic order chronological and the uuid
// separates two messages stored in the same nanosecond.
func (m MessageRepository) StoreMessage(message StoredMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	key := fmt.Sprintf("%s%019d:%s", roomPrefix(message.Room), message.At.UnixNano(), message.ID)
	value, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// GetMessages returns the messages of a room, oldest first.
func (m MessageRepository) GetMessages(room string) ([]StoredMessage, error) {
	messages := make([]StoredMessage, 0)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(roomPrefix(room))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var message StoredMessage
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &message)
			})
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("Messages fetched", "room", room, "count", len(messages))
	return messages, nil
}

func roomPrefix(room string) string {
	return "msg:" + room + ":"
}
