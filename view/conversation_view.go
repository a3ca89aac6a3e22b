// Package view orchestrates one open conversation: history, live channel, store and notices.
package view

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"talent-chat/contract"
	"talent-chat/domain/chat"
	"talent-chat/errors"
	"talent-chat/notice"
	"talent-chat/projection"
	"talent-chat/runtime/workers"

	"github.com/google/uuid"
)

const eventBuffer = 256

type Option func(*Opener)

func WithNoticeTTL(ttl time.Duration) Option {
	return func(o *Opener) { o.noticeTTL = ttl }
}

func WithRestartInterval(interval time.Duration) Option {
	return func(o *Opener) { o.restartInterval = interval }
}

// WithReadMarks records how far the user has read when the conversation is loaded and closed.
func WithReadMarks(marks contract.ReadMarks) Option {
	return func(o *Opener) { o.readMarks = marks }
}

type Opener struct {
	log             *slog.Logger
	history         contract.HistoryLoader
	connector       contract.Connector
	readMarks       contract.ReadMarks
	noticeTTL       time.Duration
	restartInterval time.Duration
}

func NewOpener(log *slog.Logger, history contract.HistoryLoader, connector contract.Connector, opts ...Option) *Opener {
	o := &Opener{
		log:             log,
		history:         history,
		connector:       connector,
		noticeTTL:       notice.DefaultTTL,
		restartInterval: workers.DefaultRestartInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ConversationView is the state of one open conversation. It owns its channel:
// nothing else sends through it and it is never reused after Close.
type ConversationView struct {
	id            uuid.UUID
	log           *slog.Logger
	session       chat.Session
	counterpartID string
	readMarks     contract.ReadMarks

	timeline   *projection.Timeline
	notices    *notice.Board
	supervisor *workers.Supervisor
	events     chan func()
	updates    chan struct{}
	ready      chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.RWMutex
	channel     contract.ChatChannel
	counterpart chat.Participant

	historyLoaded atomic.Bool
	closeOnce     sync.Once
}

// Open validates the session and starts loading the conversation. It returns at once:
// the history load and the channel establishment run concurrently and Ready is closed
// when both have settled. Neither failure fails Open.
func (o *Opener) Open(ctx context.Context, session chat.Session, counterpartID string) (*ConversationView, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	counterpartID = strings.TrimSpace(counterpartID)
	if counterpartID == "" {
		return nil, errors.ErrMissingCounterpart
	}

	viewCtx, cancel := context.WithCancel(ctx)
	v := &ConversationView{
		id:            uuid.New(),
		log:           o.log,
		session:       session,
		counterpartID: counterpartID,
		readMarks:     o.readMarks,
		timeline:      projection.NewTimeline(),
		notices:       notice.NewBoard(o.noticeTTL),
		supervisor:    workers.NewSupervisor(o.log, o.restartInterval),
		events:        make(chan func(), eventBuffer),
		updates:       make(chan struct{}, 1),
		ready:         make(chan struct{}),
		ctx:           viewCtx,
		cancel:        cancel,
		counterpart:   chat.Participant{ID: counterpartID},
	}
	v.log = o.log.With("view", v.id.String(), "counterpart", counterpartID)
	v.notices.OnChange(v.notify)

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		v.supervisor.Add(&eventLoop{events: v.events}).Run(viewCtx)
	}()

	var settle sync.WaitGroup
	settle.Add(2)
	v.wg.Add(2)
	go func() {
		defer v.wg.Done()
		defer settle.Done()
		v.loadHistory(o.history)
	}()
	go func() {
		defer v.wg.Done()
		defer settle.Done()
		v.connect(o.connector)
	}()
	go func() {
		settle.Wait()
		close(v.ready)
	}()
	return v, nil
}

func (v *ConversationView) loadHistory(loader contract.HistoryLoader) {
	history, err := loader.Load(v.ctx, v.counterpartID)
	if v.ctx.Err() != nil {
		return
	}
	v.apply(func() {
		if err != nil {
			v.log.Error("History unavailable", "error", err)
			v.timeline.Seed(nil)
			v.notify()
			return
		}
		if !v.timeline.Seed(history.Messages) {
			return
		}
		v.mu.Lock()
		v.counterpart = history.Counterpart
		v.mu.Unlock()
		v.historyLoaded.Store(true)
		v.markRead()
		v.notify()
	})
}

func (v *ConversationView) connect(connector contract.Connector) {
	channel, err := connector.Connect(v.ctx)
	if err != nil {
		if v.ctx.Err() == nil {
			v.log.Warn("Chat channel unavailable", "error", err)
			v.notices.Show(errors.NoticeText(err))
		}
		return
	}

	channel.OnMessage(func(message chat.Message) {
		v.post(func() {
			if v.timeline.Append(message) {
				v.notify()
			}
		})
	})
	channel.OnError(func(text string) {
		v.notices.Show(text)
	})
	if err := channel.JoinRoom(v.session.UserID, v.session.Name(), v.counterpartID); err != nil {
		v.log.Warn("Unable to join the conversation", "error", err)
		channel.Disconnect()
		v.notices.Show(errors.NoticeText(err))
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ctx.Err() != nil {
		// Closed while connecting: nobody else will disconnect this channel.
		channel.Disconnect()
		return
	}
	v.channel = channel
}

// Send validates and emits one message. Validation failures never reach the network.
// The message shows up in the timeline when the backend echoes it.
func (v *ConversationView) Send(body string) error {
	text, err := chat.PrepareBody(body)
	if err != nil {
		v.notices.Show(errors.NoticeText(err))
		return err
	}
	channel := v.activeChannel()
	if channel == nil {
		v.notices.Show(errors.NoticeText(errors.ErrNotConnected))
		return errors.ErrNotConnected
	}
	if err := channel.Send(text, v.session.UserID, v.session.Name(), v.counterpartID); err != nil {
		v.notices.Show(errors.NoticeText(err))
		return err
	}
	return nil
}

func (v *ConversationView) ID() uuid.UUID {
	return v.id
}

func (v *ConversationView) Session() chat.Session {
	return v.session
}

func (v *ConversationView) Messages() []chat.Message {
	return v.timeline.Messages()
}

func (v *ConversationView) Classified() []chat.ClassifiedMessage {
	return v.timeline.Classified(v.session)
}

func (v *ConversationView) Counterpart() chat.Participant {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.counterpart
}

func (v *ConversationView) Notice() (notice.Notice, bool) {
	return v.notices.Current()
}

func (v *ConversationView) Connected() bool {
	return v.activeChannel() != nil
}

// Updates signals that something visible changed. Signals coalesce.
func (v *ConversationView) Updates() <-chan struct{} {
	return v.updates
}

// Ready is closed once the history load and the channel establishment have both settled.
func (v *ConversationView) Ready() <-chan struct{} {
	return v.ready
}

func (v *ConversationView) Done() <-chan struct{} {
	return v.ctx.Done()
}

// Close tears the view down. It is idempotent and waits for the view goroutines.
// Events arriving afterwards never reach the store.
func (v *ConversationView) Close() {
	v.closeOnce.Do(func() {
		v.cancel()
		v.mu.Lock()
		channel := v.channel
		v.channel = nil
		v.mu.Unlock()
		if channel != nil {
			channel.Disconnect()
		}
		v.markRead()
		v.timeline.Close()
		v.notices.Close()
		v.supervisor.Stop()
		v.wg.Wait()
		v.log.Debug("Conversation closed")
	})
}

func (v *ConversationView) activeChannel() contract.ChatChannel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.channel
}

func (v *ConversationView) markRead() {
	if v.readMarks == nil || !v.historyLoaded.Load() {
		return
	}
	if err := v.readMarks.MarkRead(v.counterpartID, v.timeline.Len()); err != nil {
		v.log.Warn("Unable to store read mark", "error", err)
	}
}

// post hands a mutation to the event loop. It gives up when the view is closed.
func (v *ConversationView) post(fn func()) {
	select {
	case v.events <- fn:
	case <-v.ctx.Done():
	}
}

// apply posts fn and waits until the event loop has run it.
func (v *ConversationView) apply(fn func()) {
	done := make(chan struct{})
	v.post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
	case <-v.ctx.Done():
	}
}

func (v *ConversationView) notify() {
	select {
	case v.updates <- struct{}{}:
	default:
	}
}
