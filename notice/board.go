// Package notice holds the single transient message shown to the user for errors.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 5 * time.Second

type Notice struct {
	ID      uuid.UUID
	Text    string
	ShownAt time.Time
}

// Board shows at most one notice at a time. A new notice replaces the current one
// and restarts the dismiss window.
type Board struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  *Notice
	timer    *time.Timer
	closed   bool
	onChange func()
}

func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl}
}

// OnChange registers a callback called, outside the lock, whenever the current notice changes.
func (b *Board) OnChange(callback func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = callback
}

// Show displays text until the window elapses or another notice replaces it.
// Blank text and a closed board are ignored.
func (b *Board) Show(text string) (Notice, bool) {
	b.mu.Lock()
	if b.closed || text == "" {
		b.mu.Unlock()
		return Notice{}, false
	}
	n := Notice{ID: uuid.New(), Text: text, ShownAt: time.Now()}
	b.current = &n
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(n.ID) })
	callback := b.onChange
	b.mu.Unlock()

	if callback != nil {
		callback()
	}
	return n, true
}

func (b *Board) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

func (b *Board) Dismiss() {
	b.mu.Lock()
	if b.current == nil {
		b.mu.Unlock()
		return
	}
	b.clear()
	callback := b.onChange
	b.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// Close cancels the pending dismiss timer. The board stays empty afterwards.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.clear()
	b.onChange = nil
}

// expire only dismisses the notice it was scheduled for: a timer that lost
// the race against Stop must not clear a newer notice.
func (b *Board) expire(id uuid.UUID) {
	b.mu.Lock()
	if b.closed || b.current == nil || b.current.ID != id {
		b.mu.Unlock()
		return
	}
	b.clear()
	callback := b.onChange
	b.mu.Unlock()

	if callback != nil {
		callback()
	}
}

func (b *Board) clear() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.current = nil
}
