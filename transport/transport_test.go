package transport_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talent-chat/api"
	"talent-chat/auth"
	"talent-chat/client"
	"talent-chat/contract"
	"talent-chat/devserver"
	"talent-chat/domain/chat"
	"talent-chat/engineio"
	"talent-chat/errors"
	"talent-chat/transport"

	"github.com/fasthttp/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var sessionSecret = []byte("transport-test-secret")

func startServer(t *testing.T, opts ...devserver.Option) string {
	server, err := devserver.New(slog.Default(), append(opts, devserver.WithSecret(sessionSecret))...)
	require.NoError(t, err)
	server.AddUser(devserver.User{ID: "ava-1", UserName: "Ava"})
	server.AddUser(devserver.User{ID: "noah-1", UserName: "Noah"})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })
	return "http://" + ln.Addr().String()
}

func newDialer(t *testing.T, baseURL, userID string, opts ...transport.Option) *transport.Dialer {
	token, err := auth.IssueToken(sessionSecret, userID, time.Hour)
	require.NoError(t, err)
	httpClient, err := api.NewSessionHTTPClient(baseURL, devserver.DefaultCookieName, token, 5*time.Second)
	require.NoError(t, err)
	dialer, err := transport.NewDialer(logs.GetLoggerFromLevel(slog.LevelDebug), baseURL, httpClient, opts...)
	require.NoError(t, err)
	return dialer
}

type participant struct {
	session  chat.Session
	channel  contract.ChatChannel
	messages chan chat.Message
	errors   chan string
}

func join(t *testing.T, dialer *transport.Dialer, session chat.Session, counterpartID string) *participant {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	channel, err := client.NewManager(slog.Default(), dialer).Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(channel.Disconnect)

	p := &participant{session: session, channel: channel, messages: make(chan chat.Message, 16), errors: make(chan string, 16)}
	channel.OnMessage(func(m chat.Message) { p.messages <- m })
	channel.OnError(func(text string) { p.errors <- text })
	require.NoError(t, channel.JoinRoom(session.UserID, session.Name(), counterpartID))
	return p
}

func (p *participant) send(t *testing.T, body, counterpartID string) {
	require.NoError(t, p.channel.Send(body, p.session.UserID, p.session.Name(), counterpartID))
}

func (p *participant) receive(t *testing.T) chat.Message {
	select {
	case m := <-p.messages:
		return m
	case text := <-p.errors:
		require.Failf(t, "unexpected error event", text)
	case <-time.After(5 * time.Second):
		require.Fail(t, "no message received")
	}
	return chat.Message{}
}

func TestDialer_WebsocketRoundTrip(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t)
	noah := chat.Session{UserID: "noah-1", DisplayName: "Noah"}
	ava := chat.Session{UserID: "ava-1", DisplayName: "Ava"}

	// Given Noah joined and saw his own message echoed
	n := join(t, newDialer(t, baseURL, "noah-1"), noah, "ava-1")
	n.send(t, "  anyone here? ", "ava-1")
	echo := n.receive(t)
	req.Equal("anyone here?", echo.Text)
	req.Equal("Noah", echo.SenderName)
	req.Equal(chat.SourceLive, echo.Source)

	// When Ava joins and answers
	a := join(t, newDialer(t, baseURL, "ava-1"), ava, "noah-1")
	a.send(t, "hi Noah", "noah-1")

	// Then both sides receive the answer
	req.Equal("hi Noah", a.receive(t).Text)
	received := n.receive(t)
	req.Equal("hi Noah", received.Text)
	req.Equal("Ava", received.SenderName)
}

func TestDialer_FallsBackToPolling(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t, devserver.WithoutWebsocket())
	dialer := newDialer(t, baseURL, "noah-1")

	established, err := dialer.Dial(context.Background())
	req.NoError(err)
	defer established.Close()

	req.Equal(transport.Polling, established.Name())
	req.NotEmpty(established.Handshake().SID)
}

func TestDialer_PollingRoundTrip(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t, devserver.WithoutWebsocket())
	noah := chat.Session{UserID: "noah-1", DisplayName: "Noah"}

	n := join(t, newDialer(t, baseURL, "noah-1"), noah, "ava-1")
	n.send(t, "over polling", "ava-1")

	req.Equal("over polling", n.receive(t).Text)
}

func TestDialer_PollingHeartbeat(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t, devserver.WithoutWebsocket(), devserver.WithPing(100*time.Millisecond, 200*time.Millisecond))
	noah := chat.Session{UserID: "noah-1", DisplayName: "Noah"}

	// Given a session kept alive only by pings answered over polling
	n := join(t, newDialer(t, baseURL, "noah-1"), noah, "ava-1")
	time.Sleep(600 * time.Millisecond)

	// Then the channel is still usable
	n.send(t, "still alive", "ava-1")
	req.Equal("still alive", n.receive(t).Text)
}

func TestDialer_NoTransport(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t, devserver.WithoutWebsocket())
	dialer := newDialer(t, baseURL, "noah-1", transport.WithTransports(transport.Websocket))

	_, err := dialer.Dial(context.Background())

	req.ErrorIs(err, errors.ErrNoTransport)
}

func TestDialer_UnknownUserRejected(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t)

	_, err := client.NewManager(slog.Default(), newDialer(t, baseURL, "ghost")).Connect(context.Background())

	req.ErrorIs(err, errors.ErrConnectRejected)
}

func TestDialer_InvalidMessageAnsweredWithError(t *testing.T) {
	req := require.New(t)
	baseURL := startServer(t)
	noah := chat.Session{UserID: "noah-1", DisplayName: "Noah"}
	n := join(t, newDialer(t, baseURL, "noah-1"), noah, "ava-1")

	// When the server is asked to send on behalf of another user
	req.NoError(n.channel.Send("spoofed", "ava-1", "Ava", "noah-1"))

	select {
	case text := <-n.errors:
		req.Equal("Failed to send message", text)
	case <-time.After(5 * time.Second):
		req.Fail("no error event")
	}
}

// startSilentServer completes the Engine.IO handshake over websocket, then never answers:
// the namespace connect stays unacknowledged until the client hangs up.
func startSilentServer(t *testing.T) string {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		open := engineio.EncodeHandshake(engineio.Handshake{SID: "silent-1", PingInterval: 25000, PingTimeout: 20000})
		if err := conn.WriteMessage(websocket.TextMessage, engineio.EncodePacket(open)); err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestDialer_UnacknowledgedConnectHonoursDeadline(t *testing.T) {
	req := require.New(t)
	baseURL := startSilentServer(t)
	dialer := newDialer(t, baseURL, "noah-1", transport.WithTransports(transport.Websocket))
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := client.NewManager(slog.Default(), dialer).Connect(ctx)

	req.ErrorIs(err, errors.ErrNotConnected)
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Less(time.Since(started), 2*time.Second)
}

func TestWebsocketRead_Cancelled(t *testing.T) {
	req := require.New(t)
	baseURL := startSilentServer(t)
	dialer := newDialer(t, baseURL, "noah-1", transport.WithTransports(transport.Websocket))
	established, err := dialer.Dial(context.Background())
	req.NoError(err)
	defer established.Close()

	// When the reader gives up while the server stays silent
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	started := time.Now()
	_, err = established.Read(ctx)

	// Then the blocked read returns promptly
	req.ErrorIs(err, context.Canceled)
	req.Less(time.Since(started), time.Second)
}
