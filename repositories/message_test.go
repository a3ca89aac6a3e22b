package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_StoreAndGet(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()
	repository := NewMessageRepository(db, slog.Default())
	at := time.Now().UTC()

	// Given messages stored out of order in two rooms
	req.NoError(repository.StoreMessage(StoredMessage{Room: "a|b", SenderName: "Bob", Text: "second", At: at.Add(time.Minute)}))
	req.NoError(repository.StoreMessage(StoredMessage{Room: "a|b", SenderName: "Alice", Text: "first", At: at}))
	req.NoError(repository.StoreMessage(StoredMessage{Room: "a|c", SenderName: "Clara", Text: "elsewhere", At: at}))

	// When fetching one room
	messages, err := repository.GetMessages("a|b")

	// Then only its messages come back, oldest first
	req.NoError(err)
	req.Equal([]string{"first", "second"}, lo.Map(messages, func(m StoredMessage, _ int) string { return m.Text }))
	req.NotZero(messages[0].ID)
}

func TestMessageRepository_EmptyRoom(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()

	messages, err := NewMessageRepository(db, slog.Default()).GetMessages("nobody")

	req.NoError(err)
	req.NotNil(messages)
	req.Empty(messages)
}
