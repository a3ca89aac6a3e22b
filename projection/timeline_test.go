package projection

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"talent-chat/domain/chat"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func texts(messages []chat.Message) []string {
	return lo.Map(messages, func(item chat.Message, _ int) string { return item.Text })
}

func TestTimeline_HistoryThenLive(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	at := time.Now()

	req.True(timeline.Seed([]chat.Message{
		chat.NewHistoryMessage("Ava", "hi", &at),
		chat.NewHistoryMessage("Noah", "hello", &at),
	}))
	req.True(timeline.Append(chat.NewLiveMessage("Ava", "how are you")))

	req.Equal([]string{"hi", "hello", "how are you"}, texts(timeline.Messages()))
	req.Equal(3, timeline.Len())
}

func TestTimeline_LiveBeforeSeedStaysAfterHistory(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// Given a live message arrives while the history request is still in flight
	timeline.Append(chat.NewLiveMessage("Ava", "early"))

	// When the history lands
	timeline.Seed([]chat.Message{chat.NewHistoryMessage("Ava", "old", nil)})

	// Then history comes first
	req.Equal([]string{"old", "early"}, texts(timeline.Messages()))
}

func TestTimeline_SeedOnce(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	req.True(timeline.Seed(nil))
	req.True(timeline.Seeded())
	req.False(timeline.Seed([]chat.Message{chat.NewHistoryMessage("Ava", "again", nil)}))
	req.Empty(timeline.Messages())
}

func TestTimeline_NoDeduplication(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// Given the history already contains a message that the live channel delivers again
	timeline.Seed([]chat.Message{chat.NewHistoryMessage("Ava", "race", nil)})
	timeline.Append(chat.NewLiveMessage("Ava", "race"))

	// Then both copies are kept: ordering is by insertion, not by identity
	req.Equal([]string{"race", "race"}, texts(timeline.Messages()))
}

func TestTimeline_AppendPreservesArrivalOrder(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	history := []chat.Message{chat.NewHistoryMessage("Ava", "h0", nil), chat.NewHistoryMessage("Noah", "h1", nil)}
	timeline.Seed(history)

	var expected []string
	expected = append(expected, "h0", "h1")
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("live-%d", i)
		expected = append(expected, text)
		timeline.Append(chat.NewLiveMessage("Ava", text))
	}

	req.Equal(expected, texts(timeline.Messages()))
}

func TestTimeline_ClosedIgnoresMutations(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Seed([]chat.Message{chat.NewHistoryMessage("Ava", "hi", nil)})

	timeline.Close()

	req.True(timeline.Closed())
	req.False(timeline.Append(chat.NewLiveMessage("Ava", "late")))
	req.Equal([]string{"hi"}, texts(timeline.Messages()))
}

func TestTimeline_Classified(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	session := chat.Session{UserID: "noah-1", DisplayName: "Noah"}
	timeline.Seed([]chat.Message{chat.NewHistoryMessage("Noah", "hi", nil)})
	timeline.Append(chat.NewLiveMessage("Ava", "hello"))

	classified := timeline.Classified(session)

	req.Len(classified, 2)
	req.Equal(chat.Mine, classified[0].Side)
	req.Equal(chat.Theirs, classified[1].Side)
}

func TestTimeline_ConcurrentReaders(t *testing.T) {
	timeline := NewTimeline()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = timeline.Messages()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		timeline.Append(chat.NewLiveMessage("Ava", "x"))
	}
	wg.Wait()
	require.Equal(t, 100, timeline.Len())
}
