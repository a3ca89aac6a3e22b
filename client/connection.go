// Package client owns the live chat channel of one open conversation.
// A Connection is created per conversation view, joined once, and never reused after Disconnect.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"talent-chat/contract"
	"talent-chat/domain/chat"
	"talent-chat/engineio"
	"talent-chat/errors"
)

const (
	connectTimeout    = 10 * time.Second
	writeTimeout      = 10 * time.Second
	disconnectTimeout = time.Second
	inboundBuffer     = 256
)

type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// inbound is either a message or an error text, delivered to handlers in arrival order.
type inbound struct {
	message *chat.Message
	err     string
}

type Manager struct {
	log    *slog.Logger
	dialer contract.TransportDialer
}

func NewManager(log *slog.Logger, dialer contract.TransportDialer) *Manager {
	return &Manager{log: log, dialer: dialer}
}

// Connect establishes the channel and attaches it to the default namespace.
// It gives up when ctx is done or the server has not acknowledged within connectTimeout.
// Failures are returned as-is; reconnecting is the caller's decision.
func (m *Manager) Connect(ctx context.Context) (contract.ChatChannel, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	transport, err := m.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	conn := newConnection(m.log, transport)
	if err := conn.open(ctx); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return conn, nil
}

type Connection struct {
	log       *slog.Logger
	transport contract.Transport
	state     atomic.Int32
	joined    atomic.Bool

	handlersMu sync.RWMutex
	onMessage  func(chat.Message)
	onError    func(string)

	inbound   chan inbound
	done      chan struct{}
	closeOnce sync.Once
	watchdog  *time.Timer
}

func newConnection(log *slog.Logger, transport contract.Transport) *Connection {
	c := &Connection{
		log:       log.With("transport", transport.Name(), "sid", transport.Handshake().SID),
		transport: transport,
		inbound:   make(chan inbound, inboundBuffer),
		done:      make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))
	return c
}

func (c *Connection) State() State {
	return State(c.state.Load())
}

// open performs the namespace connect and waits for its acknowledgement.
func (c *Connection) open(ctx context.Context) error {
	if err := c.transport.Write(ctx, engineio.ConnectPacket()); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrNotConnected, err)
	}
	for {
		p, err := c.transport.Read(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrNotConnected, err)
		}
		switch p.Type {
		case engineio.Ping:
			if err := c.transport.Write(ctx, engineio.NewPacket(engineio.Pong, p.Data)); err != nil {
				return fmt.Errorf("%w: %w", errors.ErrNotConnected, err)
			}
		case engineio.Close:
			return fmt.Errorf("%w: closed during connect", errors.ErrNotConnected)
		case engineio.Message:
			sp, err := engineio.DecodeSocketPacket(p)
			if err != nil {
				return err
			}
			switch sp.Type {
			case engineio.SocketConnect:
				c.state.Store(int32(StateOpen))
				c.startWatchdog()
				go c.dispatch()
				go c.readPump()
				c.log.Debug("chat channel open")
				return nil
			case engineio.SocketConnectError:
				return fmt.Errorf("%w: %s", errors.ErrConnectRejected, engineio.ConnectErrorMessage(sp))
			}
		}
	}
}

// JoinRoom announces the two-party room. It must be called once, before any Send.
func (c *Connection) JoinRoom(selfID, selfName, counterpartID string) error {
	if c.State() != StateOpen {
		return errors.ErrNotConnected
	}
	if !c.joined.CompareAndSwap(false, true) {
		return errors.ErrAlreadyJoined
	}
	if err := c.emit(EventJoinChat, JoinChatPayload{
		FirstName:    selfName,
		UserID:       selfID,
		TargetUserID: counterpartID,
	}); err != nil {
		return err
	}
	return nil
}

// Send validates the body before anything touches the network.
// The message is not echoed locally; it comes back as a messageReceived event.
func (c *Connection) Send(body, selfID, selfName, counterpartID string) error {
	text, err := chat.PrepareBody(body)
	if err != nil {
		return err
	}
	if c.State() != StateOpen {
		return errors.ErrNotConnected
	}
	if !c.joined.Load() {
		return errors.ErrNotJoined
	}
	return c.emit(EventSendMessage, SendMessagePayload{
		FirstName:    selfName,
		LastName:     "",
		UserID:       selfID,
		TargetUserID: counterpartID,
		Text:         text,
	})
}

func (c *Connection) OnMessage(handler func(chat.Message)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onMessage = handler
}

func (c *Connection) OnError(handler func(string)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onError = handler
}

// Disconnect leaves the room and closes the transport. Safe to call more than once.
// Events still queued are discarded and handlers are not called for them.
func (c *Connection) Disconnect() {
	c.closeOnce.Do(func() {
		wasOpen := State(c.state.Swap(int32(StateClosed))) == StateOpen
		close(c.done)
		c.stopWatchdog()
		if wasOpen {
			ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
			_ = c.transport.Write(ctx, engineio.DisconnectPacket())
			cancel()
		}
		_ = c.transport.Close()
		c.log.Debug("chat channel closed")
	})
}

func (c *Connection) emit(name string, payload any) error {
	p, err := engineio.EncodeEvent(name, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.transport.Write(ctx, p); err != nil {
		c.lost(err)
		return fmt.Errorf("%w: %w", errors.ErrNotConnected, err)
	}
	return nil
}

func (c *Connection) readPump() {
	ctx := context.Background()
	for {
		p, err := c.transport.Read(ctx)
		if err != nil {
			c.lost(err)
			return
		}
		c.resetWatchdog()
		switch p.Type {
		case engineio.Ping:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.transport.Write(wctx, engineio.NewPacket(engineio.Pong, p.Data))
			cancel()
			if err != nil {
				c.lost(err)
				return
			}
		case engineio.Close:
			c.lost(fmt.Errorf("closed by server"))
			return
		case engineio.Message:
			if !c.handleSocketPacket(p) {
				return
			}
		}
	}
}

// handleSocketPacket returns false when the server ended the session.
func (c *Connection) handleSocketPacket(p engineio.Packet) bool {
	sp, err := engineio.DecodeSocketPacket(p)
	if err != nil {
		c.log.Warn("dropping malformed packet", "error", err)
		return true
	}
	switch sp.Type {
	case engineio.SocketDisconnect:
		c.lost(fmt.Errorf("disconnected by server"))
		return false
	case engineio.SocketConnectError:
		c.enqueue(inbound{err: engineio.ConnectErrorMessage(sp)})
	case engineio.SocketEvent:
		name, args, err := engineio.DecodeEvent(sp)
		if err != nil {
			c.log.Warn("dropping malformed event", "error", err)
			return true
		}
		c.handleEvent(name, args)
	}
	return true
}

func (c *Connection) handleEvent(name string, args []json.RawMessage) {
	if len(args) == 0 {
		c.log.Warn("event without payload", "event", name)
		return
	}
	switch name {
	case EventMessageReceived:
		var payload MessageReceivedPayload
		if err := json.Unmarshal(args[0], &payload); err != nil {
			c.log.Warn("dropping malformed message", "error", err)
			return
		}
		msg := chat.NewLiveMessage(payload.FirstName, payload.Text)
		c.enqueue(inbound{message: &msg})
	case EventMessageError:
		var payload MessageErrorPayload
		if err := json.Unmarshal(args[0], &payload); err != nil || payload.Error == "" {
			c.enqueue(inbound{err: "Message could not be delivered"})
			return
		}
		c.enqueue(inbound{err: payload.Error})
	default:
		c.log.Debug("ignoring event", "event", name)
	}
}

// lost marks the channel closed after a transport failure and reports it once.
func (c *Connection) lost(cause error) {
	if State(c.state.Swap(int32(StateClosed))) == StateClosed {
		return
	}
	c.stopWatchdog()
	c.log.Warn("chat channel lost", "error", cause)
	_ = c.transport.Close()
	c.enqueue(inbound{err: errors.NoticeText(errors.ErrConnectionLost)})
}

func (c *Connection) enqueue(in inbound) {
	select {
	case c.inbound <- in:
	case <-c.done:
	}
}

func (c *Connection) dispatch() {
	for {
		select {
		case <-c.done:
			return
		case in := <-c.inbound:
			select {
			case <-c.done:
				return
			default:
			}
			c.deliver(in)
		}
	}
}

func (c *Connection) deliver(in inbound) {
	c.handlersMu.RLock()
	onMessage, onError := c.onMessage, c.onError
	c.handlersMu.RUnlock()

	switch {
	case in.message != nil && onMessage != nil:
		onMessage(*in.message)
	case in.message == nil && onError != nil:
		onError(in.err)
	}
}

// The server pings every pingInterval; silence beyond pingInterval+pingTimeout means the peer is gone.
func (c *Connection) startWatchdog() {
	h := c.transport.Handshake()
	if h.PingInterval <= 0 {
		return
	}
	c.watchdog = time.AfterFunc(c.heartbeatWindow(), func() {
		c.lost(fmt.Errorf("heartbeat timeout"))
	})
}

func (c *Connection) resetWatchdog() {
	if c.watchdog != nil {
		c.watchdog.Reset(c.heartbeatWindow())
	}
}

func (c *Connection) stopWatchdog() {
	if c.watchdog != nil {
		c.watchdog.Stop()
	}
}

func (c *Connection) heartbeatWindow() time.Duration {
	h := c.transport.Handshake()
	return time.Duration(h.PingInterval+h.PingTimeout) * time.Millisecond
}
