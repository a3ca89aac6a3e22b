// Package projection builds the local timeline of the open conversation.
// History is placed first, live messages follow in arrival order.
// There is no deduplication and no reordering by timestamp.
package projection

import (
	"sync"

	"talent-chat/domain/chat"

	"github.com/samber/lo"
)

// Timeline holds the messages of one open conversation.
// It is discarded with the view that owns it and never persisted.
type Timeline struct {
	mu      sync.RWMutex
	history []chat.Message
	live    []chat.Message
	seeded  bool
	closed  bool
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Seed installs the history once. Live messages appended before the seed stay after it.
// It reports false when the timeline is closed or already seeded.
func (t *Timeline) Seed(history []chat.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.seeded {
		return false
	}
	t.history = append([]chat.Message(nil), history...)
	t.seeded = true
	return true
}

// Append adds a live message at the end, unconditionally.
// It reports false when the timeline is closed.
func (t *Timeline) Append(message chat.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	t.live = append(t.live, message)
	return true
}

// Messages returns a copy: history then live messages.
func (t *Timeline) Messages() []chat.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]chat.Message, 0, len(t.history)+len(t.live))
	out = append(out, t.history...)
	return append(out, t.live...)
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.history) + len(t.live)
}

func (t *Timeline) Seeded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.seeded
}

// Close freezes the timeline; later Seed and Append calls are ignored.
func (t *Timeline) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

func (t *Timeline) Closed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

func (t *Timeline) Classified(session chat.Session) []chat.ClassifiedMessage {
	return lo.Map(t.Messages(), func(item chat.Message, _ int) chat.ClassifiedMessage {
		return chat.ClassifiedMessage{Message: item, Side: chat.Classify(item, session)}
	})
}
