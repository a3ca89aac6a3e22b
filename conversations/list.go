// Package conversations lists the conversations of the authenticated user.
package conversations

import (
	"context"
	"fmt"
	"log/slog"

	"talent-chat/api"
	"talent-chat/contract"
	"talent-chat/domain/chat"
	"talent-chat/errors"

	"github.com/samber/lo"
)

type State int

const (
	StateLoading State = iota
	StateFailed
	StateEmpty
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateEmpty:
		return "empty"
	default:
		return "loaded"
	}
}

type Summary struct {
	chat.ConversationSummary
	Unread int
}

type Listing struct {
	State     State
	Summaries []Summary
}

type Lister struct {
	log   *slog.Logger
	api   contract.ChatAPI
	marks contract.ReadMarks
}

// NewLister builds a lister. marks may be nil, in which case nothing is reported unread.
func NewLister(log *slog.Logger, chatAPI contract.ChatAPI, marks contract.ReadMarks) *Lister {
	return &Lister{log: log, api: chatAPI, marks: marks}
}

// Load returns the conversations in the order the backend sent them.
// An empty list is a distinct state, not an error.
func (l *Lister) Load(ctx context.Context) (Listing, error) {
	records, err := l.api.ListChats(ctx)
	if err != nil {
		return Listing{State: StateFailed}, fmt.Errorf("%w: %w", errors.ErrConversationsUnavailable, err)
	}
	if len(records) == 0 {
		return Listing{State: StateEmpty, Summaries: []Summary{}}, nil
	}
	summaries := lo.Map(records, func(record api.ChatSummaryRecord, _ int) Summary {
		summary := toSummary(record)
		return Summary{ConversationSummary: summary, Unread: l.unread(summary)}
	})
	return Listing{State: StateLoaded, Summaries: summaries}, nil
}

func (l *Lister) unread(summary chat.ConversationSummary) int {
	if l.marks == nil {
		return 0
	}
	seen, err := l.marks.LastSeen(summary.Target())
	if err != nil {
		l.log.Warn("Unable to read mark", "conversation", summary.ID, "error", err)
		return 0
	}
	return max(summary.MessageCount-seen, 0)
}

func toSummary(record api.ChatSummaryRecord) chat.ConversationSummary {
	summary := chat.ConversationSummary{
		ID: record.ID,
		Counterpart: chat.Participant{
			ID:          record.Participant.ID,
			DisplayName: record.Participant.UserName,
			AvatarURL:   record.Participant.ProfileImage,
			Role:        record.Participant.Role,
		},
		MessageCount: record.MessageCount,
		UpdatedAt:    record.UpdatedAt,
	}
	if record.LastMessage != nil {
		summary.LastMessage = &chat.LastMessage{
			Text:      record.LastMessage.Text,
			Sender:    record.LastMessage.Sender,
			CreatedAt: record.LastMessage.CreatedAt,
		}
	}
	return summary
}
