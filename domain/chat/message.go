// Package chat contains the core concepts of a two-party conversation as seen by a client.
// Messages are immutable; ordering is owned by the timeline, not by the message itself.
package chat

import "time"

// UnknownSender replaces a sender reference the backend could not resolve.
const UnknownSender = "Unknown"

type Source int

const (
	SourceHistory Source = iota
	SourceLive
)

func (s Source) String() string {
	switch s {
	case SourceHistory:
		return "history"
	case SourceLive:
		return "live"
	default:
		return "unknown"
	}
}

// Message is one entry of a conversation timeline.
// CreatedAt is nil for messages received on the live channel, which carries no timestamp.
type Message struct {
	SenderName string
	Text       string
	CreatedAt  *time.Time
	Source     Source
}

func NewHistoryMessage(senderName, text string, createdAt *time.Time) Message {
	if senderName == "" {
		senderName = UnknownSender
	}
	return Message{
		SenderName: senderName,
		Text:       text,
		CreatedAt:  createdAt,
		Source:     SourceHistory,
	}
}

func NewLiveMessage(senderName, text string) Message {
	return Message{
		SenderName: senderName,
		Text:       text,
		Source:     SourceLive,
	}
}

// History is the durable part of a conversation, fetched once when the conversation opens.
type History struct {
	ConversationID string
	Counterpart    Participant
	Messages       []Message
}
