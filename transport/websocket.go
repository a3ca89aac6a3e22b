package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"talent-chat/engineio"
	"talent-chat/errors"

	"github.com/fasthttp/websocket"
)

type WebsocketTransport struct {
	conn      *websocket.Conn
	handshake engineio.Handshake
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func dialWebsocket(ctx context.Context, endpoint *url.URL, jar http.CookieJar) (*WebsocketTransport, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: defaultHandshakeTimeout,
		Jar:              jar,
	}
	conn, resp, err := dialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket upgrade refused with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	t := &WebsocketTransport{conn: conn, closed: make(chan struct{})}
	handshakeCtx, cancel := context.WithTimeout(ctx, defaultHandshakeTimeout)
	defer cancel()
	p, err := t.Read(handshakeCtx)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("websocket handshake: %w", err)
	}
	t.handshake, err = engineio.DecodeHandshake(p)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return t, nil
}

func (t *WebsocketTransport) Name() string { return Websocket }

func (t *WebsocketTransport) Handshake() engineio.Handshake { return t.handshake }

// Read blocks until a frame arrives, ctx is done or the transport is closed.
// A read cut short by ctx leaves the connection unusable; callers close it.
func (t *WebsocketTransport) Read(ctx context.Context) (engineio.Packet, error) {
	if err := ctx.Err(); err != nil {
		return engineio.Packet{}, err
	}
	deadline, _ := ctx.Deadline()
	_ = t.conn.SetReadDeadline(deadline)
	stop := context.AfterFunc(ctx, func() { _ = t.conn.SetReadDeadline(time.Now()) })
	_, frame, err := t.conn.ReadMessage()
	stop()
	if err != nil {
		select {
		case <-t.closed:
			return engineio.Packet{}, errors.ErrTransportClosed
		default:
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return engineio.Packet{}, fmt.Errorf("websocket read: %w", ctxErr)
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return engineio.Packet{}, fmt.Errorf("websocket read: %w", context.DeadlineExceeded)
		}
		return engineio.Packet{}, fmt.Errorf("websocket read: %w", err)
	}
	return engineio.DecodePacket(frame)
}

func (t *WebsocketTransport) Write(ctx context.Context, packet engineio.Packet) error {
	select {
	case <-t.closed:
		return errors.ErrTransportClosed
	default:
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	_ = t.conn.SetWriteDeadline(deadline)
	if err := t.conn.WriteMessage(websocket.TextMessage, engineio.EncodePacket(packet)); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (t *WebsocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)
		t.writeMu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		t.writeMu.Unlock()
		err = t.conn.Close()
	})
	return err
}
