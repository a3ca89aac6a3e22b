package notice

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoard_ShowThenExpire(t *testing.T) {
	req := require.New(t)
	board := NewBoard(50 * time.Millisecond)

	shown, ok := board.Show("Message too long (max 1000 characters)")
	req.True(ok)

	current, ok := board.Current()
	req.True(ok)
	req.Equal(shown, current)

	req.Eventually(func() bool {
		_, ok := board.Current()
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestBoard_NewNoticeReplacesAndRestartsWindow(t *testing.T) {
	req := require.New(t)
	board := NewBoard(150 * time.Millisecond)

	board.Show("first")
	time.Sleep(100 * time.Millisecond)
	second, _ := board.Show("second")
	time.Sleep(100 * time.Millisecond)

	// Then the first timer did not dismiss the second notice
	current, ok := board.Current()
	req.True(ok)
	req.Equal(second.ID, current.ID)
	req.Equal("second", current.Text)
}

func TestBoard_CloseCancelsTimer(t *testing.T) {
	req := require.New(t)
	board := NewBoard(30 * time.Millisecond)
	var changes atomic.Int32
	board.OnChange(func() { changes.Add(1) })

	board.Show("Chat connection lost")
	board.Close()
	time.Sleep(80 * time.Millisecond)

	// Then only the show was signalled, the cancelled timer never fired
	req.Equal(int32(1), changes.Load())
	_, ok := board.Current()
	req.False(ok)
	_, ok = board.Show("after close")
	req.False(ok)
}

func TestBoard_Dismiss(t *testing.T) {
	req := require.New(t)
	board := NewBoard(time.Minute)
	var changes atomic.Int32
	board.OnChange(func() { changes.Add(1) })

	board.Dismiss()
	board.Show("hello")
	board.Dismiss()

	_, ok := board.Current()
	req.False(ok)
	req.Equal(int32(2), changes.Load())
}

func TestBoard_BlankIgnored(t *testing.T) {
	_, ok := NewBoard(0).Show("")
	require.False(t, ok)
}
