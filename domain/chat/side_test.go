package chat

import (
	"testing"

	"talent-chat/errors"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	session := Session{UserID: "u-1", DisplayName: "Noah"}

	t.Run("same display name is mine", func(t *testing.T) {
		require.Equal(t, Mine, Classify(NewLiveMessage("Noah", "hi"), session))
	})

	t.Run("other display name is theirs", func(t *testing.T) {
		require.Equal(t, Theirs, Classify(NewLiveMessage("Ava", "hi"), session))
	})

	t.Run("distinct sender sharing the display name is mine", func(t *testing.T) {
		// Live events carry no sender id, so a namesake cannot be told apart.
		namesake := NewHistoryMessage("Noah", "I am another Noah", nil)
		require.Equal(t, Mine, Classify(namesake, session))
	})

	t.Run("session without a name owns nothing", func(t *testing.T) {
		anonymous := Session{UserID: "u-2"}
		require.Equal(t, FallbackDisplayName, anonymous.Name())
		// A counterpart literally named like the fallback stays theirs
		require.Equal(t, Theirs, Classify(NewLiveMessage(FallbackDisplayName, "hi"), anonymous))
		require.Equal(t, Theirs, Classify(NewHistoryMessage("", "hi", nil), anonymous))
	})
}

func TestSession_Validate(t *testing.T) {
	req := require.New(t)

	req.ErrorIs(Session{}.Validate(), errors.ErrMissingSession)
	req.ErrorIs(Session{DisplayName: "Ava"}.Validate(), errors.ErrMissingSession)
	req.NoError(Session{UserID: "u-1"}.Validate())
}

func TestNewHistoryMessage_UnknownSender(t *testing.T) {
	req := require.New(t)

	msg := NewHistoryMessage("", "", nil)

	req.Equal(UnknownSender, msg.SenderName)
	req.Equal("", msg.Text)
	req.Equal(SourceHistory, msg.Source)
}

func TestConversationSummary_Target(t *testing.T) {
	req := require.New(t)

	req.Equal("user-9", ConversationSummary{ID: "chat-1", Counterpart: Participant{ID: "user-9"}}.Target())
	req.Equal("chat-1", ConversationSummary{ID: "chat-1"}.Target())
}
