package api

import (
	"bytes"
	"encoding/json"
	"time"
)

// SenderRef is the sender of a stored message.
// The backend populates it with the user document, but an unresolved reference arrives
// as a bare id string and a deleted user as null.
type SenderRef struct {
	ID       string `json:"_id"`
	UserName string `json:"userName"`
}

func (s *SenderRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &s.ID)
	}
	type plain SenderRef
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*s = SenderRef(decoded)
	return nil
}

type MessageRecord struct {
	SenderID  *SenderRef `json:"senderId"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"createdAt"`
}

type ChatRecord struct {
	ID       string          `json:"_id"`
	Messages []MessageRecord `json:"messages"`
}

type UserProfile struct {
	ID           string   `json:"_id"`
	UserName     string   `json:"userName"`
	ProfileImage string   `json:"profileImage"`
	Role         string   `json:"role"`
	Bio          string   `json:"bio,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

type ParticipantRecord struct {
	ID           string `json:"_id"`
	UserName     string `json:"userName"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role"`
}

type LastMessageRecord struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatSummaryRecord struct {
	ID           string             `json:"_id"`
	Participant  ParticipantRecord  `json:"participant"`
	LastMessage  *LastMessageRecord `json:"lastMessage"`
	MessageCount int                `json:"messageCount"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type chatEnvelope struct {
	Chat *ChatRecord `json:"chat"`
}

type userEnvelope struct {
	User UserProfile `json:"user"`
}

type chatsEnvelope struct {
	Chats []ChatSummaryRecord `json:"chats"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}
