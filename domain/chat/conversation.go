package chat

import "time"

// Participant is the public summary of the other side of a conversation.
type Participant struct {
	ID          string
	DisplayName string
	AvatarURL   string
	Role        string
}

type LastMessage struct {
	Text      string
	Sender    string
	CreatedAt time.Time
}

// ConversationSummary is one row of the conversation list.
type ConversationSummary struct {
	ID           string
	Counterpart  Participant
	LastMessage  *LastMessage
	MessageCount int
	UpdatedAt    time.Time
}

// Target returns the identifier used to open the conversation.
// Summaries whose counterpart could not be resolved fall back to the conversation id.
func (s ConversationSummary) Target() string {
	if s.Counterpart.ID != "" {
		return s.Counterpart.ID
	}
	return s.ID
}
