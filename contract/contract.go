//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"talent-chat/api"
	"talent-chat/domain/chat"
	"talent-chat/engineio"
)

// Worker is a long-running loop owned by a supervisor.
// Returning nil means the worker is done and must not be restarted.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to name a worker in logs.
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

// Transport moves Engine.IO packets over one established channel.
// Read is called from a single goroutine; Write must be safe for concurrent use.
type Transport interface {
	Name() string
	Handshake() engineio.Handshake
	Read(ctx context.Context) (engineio.Packet, error)
	Write(ctx context.Context, packet engineio.Packet) error
	Close() error
}

type TransportDialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// ChatAPI is the request/response surface of the backend.
type ChatAPI interface {
	GetChat(ctx context.Context, counterpartID string) (api.ChatRecord, error)
	GetUser(ctx context.Context, userID string) (api.UserProfile, error)
	ListChats(ctx context.Context) ([]api.ChatSummaryRecord, error)
}

// ChatChannel is the narrow send/receive contract of one live connection.
type ChatChannel interface {
	JoinRoom(selfID, selfName, counterpartID string) error
	Send(body, selfID, selfName, counterpartID string) error
	OnMessage(handler func(chat.Message))
	OnError(handler func(string))
	Disconnect()
}

type Connector interface {
	Connect(ctx context.Context) (ChatChannel, error)
}

type HistoryLoader interface {
	Load(ctx context.Context, counterpartID string) (chat.History, error)
}

// ReadMarks remembers how many messages of a conversation the user has already seen.
type ReadMarks interface {
	MarkRead(conversationKey string, count int) error
	LastSeen(conversationKey string) (int, error)
}
