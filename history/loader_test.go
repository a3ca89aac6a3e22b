package history

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"talent-chat/api"
	"talent-chat/domain/chat"
	"talent-chat/errors"
	"talent-chat/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoader_Load(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chatAPI := mocks.NewMockChatAPI(ctrl)
	loader := NewLoader(logs.GetLoggerFromLevel(slog.LevelDebug), chatAPI)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Given two stored messages, one of them from an unresolved sender
	chatAPI.EXPECT().GetChat(gomock.Any(), "ava-1").Return(api.ChatRecord{
		ID: "chat-1",
		Messages: []api.MessageRecord{
			{SenderID: &api.SenderRef{ID: "ava-1", UserName: "Ava"}, Text: "hi", CreatedAt: &at},
			{SenderID: &api.SenderRef{ID: "noah-1"}, Text: "hello"},
			{},
		},
	}, nil)
	chatAPI.EXPECT().GetUser(gomock.Any(), "ava-1").Return(api.UserProfile{
		ID: "ava-1", UserName: "Ava", ProfileImage: "https://cdn/ava.png", Role: "actor",
	}, nil)

	// When loading the history
	history, err := loader.Load(context.Background(), "ava-1")

	// Then messages keep their stored order with placeholders for missing fields
	req.NoError(err)
	req.Equal("chat-1", history.ConversationID)
	req.Equal(chat.Participant{ID: "ava-1", DisplayName: "Ava", AvatarURL: "https://cdn/ava.png", Role: "actor"}, history.Counterpart)
	req.Len(history.Messages, 3)
	req.Equal(chat.Message{SenderName: "Ava", Text: "hi", CreatedAt: lo.ToPtr(at), Source: chat.SourceHistory}, history.Messages[0])
	req.Equal(chat.UnknownSender, history.Messages[1].SenderName)
	req.Equal("hello", history.Messages[1].Text)
	req.Equal(chat.UnknownSender, history.Messages[2].SenderName)
	req.Equal("", history.Messages[2].Text)
}

func TestLoader_Load_NoHistory(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chatAPI := mocks.NewMockChatAPI(ctrl)
	loader := NewLoader(slog.Default(), chatAPI)

	chatAPI.EXPECT().GetChat(gomock.Any(), "ava-1").Return(api.ChatRecord{}, nil)
	chatAPI.EXPECT().GetUser(gomock.Any(), "ava-1").Return(api.UserProfile{ID: "ava-1", UserName: "Ava"}, nil)

	history, err := loader.Load(context.Background(), "ava-1")

	// Then no history is a valid outcome, not an error
	req.NoError(err)
	req.NotNil(history.Messages)
	req.Empty(history.Messages)
}

func TestLoader_Load_EitherFailureFailsTheLoad(t *testing.T) {
	t.Run("messages unavailable", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chatAPI := mocks.NewMockChatAPI(ctrl)
		chatAPI.EXPECT().GetChat(gomock.Any(), "ava-1").Return(api.ChatRecord{}, &api.StatusError{Code: 500})
		chatAPI.EXPECT().GetUser(gomock.Any(), "ava-1").Return(api.UserProfile{ID: "ava-1"}, nil).MaxTimes(1)

		history, err := NewLoader(slog.Default(), chatAPI).Load(context.Background(), "ava-1")

		req.ErrorIs(err, errors.ErrHistoryUnavailable)
		req.ErrorIs(err, errors.ErrUnexpectedStatus)
		req.Empty(history.Messages)
	})

	t.Run("profile unavailable", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chatAPI := mocks.NewMockChatAPI(ctrl)
		chatAPI.EXPECT().GetChat(gomock.Any(), "ava-1").Return(api.ChatRecord{
			Messages: []api.MessageRecord{{Text: "stale"}},
		}, nil).MaxTimes(1)
		chatAPI.EXPECT().GetUser(gomock.Any(), "ava-1").Return(api.UserProfile{}, &api.StatusError{Code: 404})

		history, err := NewLoader(slog.Default(), chatAPI).Load(context.Background(), "ava-1")

		// Then the already fetched messages are not used
		req.ErrorIs(err, errors.ErrHistoryUnavailable)
		req.Empty(history.Messages)
	})
}

func TestLoader_Load_RequestsRunInParallel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chatAPI := mocks.NewMockChatAPI(ctrl)
	bothStarted := make(chan struct{}, 2)
	release := make(chan struct{})

	wait := func() {
		bothStarted <- struct{}{}
		<-release
	}
	chatAPI.EXPECT().GetChat(gomock.Any(), "ava-1").DoAndReturn(
		func(context.Context, string) (api.ChatRecord, error) {
			wait()
			return api.ChatRecord{}, nil
		})
	chatAPI.EXPECT().GetUser(gomock.Any(), "ava-1").DoAndReturn(
		func(context.Context, string) (api.UserProfile, error) {
			wait()
			return api.UserProfile{ID: "ava-1"}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := NewLoader(slog.Default(), chatAPI).Load(context.Background(), "ava-1")
		done <- err
	}()

	// Then both requests are in flight before either completes
	for i := 0; i < 2; i++ {
		select {
		case <-bothStarted:
		case <-time.After(time.Second):
			req.Fail("requests were not issued concurrently")
		}
	}
	close(release)
	req.NoError(<-done)
}
