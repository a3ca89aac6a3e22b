// Package history fetches the durable part of a conversation when it opens.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"talent-chat/api"
	"talent-chat/contract"
	"talent-chat/domain/chat"
	"talent-chat/errors"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Loader struct {
	log *slog.Logger
	api contract.ChatAPI
}

func NewLoader(log *slog.Logger, chatAPI contract.ChatAPI) *Loader {
	return &Loader{log: log, api: chatAPI}
}

// Load fetches the stored messages and the counterpart profile in parallel.
// Both must succeed: a partial result is never returned. A conversation without
// any stored message yields an empty, non-nil slice.
func (l *Loader) Load(ctx context.Context, counterpartID string) (chat.History, error) {
	var (
		record  api.ChatRecord
		profile api.UserProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = l.api.GetChat(gctx, counterpartID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = l.api.GetUser(gctx, counterpartID)
		return err
	})
	if err := g.Wait(); err != nil {
		return chat.History{}, fmt.Errorf("%w: %w", errors.ErrHistoryUnavailable, err)
	}

	messages := lo.Map(record.Messages, func(item api.MessageRecord, _ int) chat.Message {
		return toMessage(item)
	})
	l.log.Debug("history loaded", "counterpart", counterpartID, "messages", len(messages))
	return chat.History{
		ConversationID: record.ID,
		Counterpart:    toParticipant(profile, counterpartID),
		Messages:       messages,
	}, nil
}

func toMessage(record api.MessageRecord) chat.Message {
	sender := ""
	if record.SenderID != nil {
		sender = record.SenderID.UserName
	}
	return chat.NewHistoryMessage(sender, record.Text, record.CreatedAt)
}

func toParticipant(profile api.UserProfile, fallbackID string) chat.Participant {
	return chat.Participant{
		ID:          lo.Ternary(profile.ID != "", profile.ID, fallbackID),
		DisplayName: profile.UserName,
		AvatarURL:   profile.ProfileImage,
		Role:        profile.Role,
	}
}
