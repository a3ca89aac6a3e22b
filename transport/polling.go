package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"talent-chat/engineio"
	"talent-chat/errors"

	"github.com/google/uuid"
)

const maxPollBody = 8 << 20

// PollingTransport emulates a duplex channel with a long-lived GET per read
// and a POST per write. Reads are buffered because one response may carry a batch.
type PollingTransport struct {
	client    *http.Client
	endpoint  *url.URL
	handshake engineio.Handshake
	pending   []engineio.Packet
	writeMu   sync.Mutex
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
}

func dialPolling(ctx context.Context, endpoint *url.URL, client *http.Client) (*PollingTransport, error) {
	packets, err := poll(ctx, client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("polling handshake: %w", err)
	}
	handshake, err := engineio.DecodeHandshake(packets[0])
	if err != nil {
		return nil, err
	}

	sessionURL := *endpoint
	q := sessionURL.Query()
	q.Set("sid", handshake.SID)
	sessionURL.RawQuery = q.Encode()

	// A long poll waits up to pingInterval on the server side.
	pollClient := *client
	if wait := time.Duration(handshake.PingInterval+handshake.PingTimeout) * time.Millisecond; pollClient.Timeout != 0 && pollClient.Timeout < wait {
		pollClient.Timeout = wait
	}

	transportCtx, cancel := context.WithCancel(context.Background())
	return &PollingTransport{
		client:    &pollClient,
		endpoint:  &sessionURL,
		handshake: handshake,
		pending:   packets[1:],
		ctx:       transportCtx,
		cancel:    cancel,
	}, nil
}

func (t *PollingTransport) Name() string { return Polling }

func (t *PollingTransport) Handshake() engineio.Handshake { return t.handshake }

func (t *PollingTransport) Read(ctx context.Context) (engineio.Packet, error) {
	for len(t.pending) == 0 {
		if t.ctx.Err() != nil {
			return engineio.Packet{}, errors.ErrTransportClosed
		}
		reqCtx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(t.ctx, cancel)
		packets, err := poll(reqCtx, t.client, t.endpoint)
		stop()
		cancel()
		if err != nil {
			if t.ctx.Err() != nil {
				return engineio.Packet{}, errors.ErrTransportClosed
			}
			return engineio.Packet{}, err
		}
		t.pending = packets
	}
	p := t.pending[0]
	t.pending = t.pending[1:]
	return p, nil
}

func (t *PollingTransport) Write(ctx context.Context, packet engineio.Packet) error {
	if t.ctx.Err() != nil {
		return errors.ErrTransportClosed
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.post(ctx, packet)
}

func (t *PollingTransport) post(ctx context.Context, packet engineio.Packet) error {
	body := engineio.EncodePayload([]engineio.Packet{packet})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cacheBusted(t.endpoint), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("polling write: %w", err)
	}
	defer resp.Body.Close()
	answer, _ := io.ReadAll(io.LimitReader(resp.Body, 64))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("polling write: status %d: %s", resp.StatusCode, answer)
	}
	return nil
}

func (t *PollingTransport) Close() error {
	t.closeOnce.Do(func() {
		t.writeMu.Lock()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = t.post(ctx, engineio.NewPacket(engineio.Close, nil))
		cancel()
		t.writeMu.Unlock()
		t.cancel()
	})
	return nil
}

func poll(ctx context.Context, client *http.Client, endpoint *url.URL) ([]engineio.Packet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheBusted(endpoint), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polling read: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPollBody))
	if err != nil {
		return nil, fmt.Errorf("polling read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polling read: status %d: %s", resp.StatusCode, body)
	}
	return engineio.DecodePayload(body)
}

// cacheBusted adds the t parameter browsers and proxies rely on to skip caches.
func cacheBusted(endpoint *url.URL) string {
	u := *endpoint
	q := u.Query()
	q.Set("t", uuid.NewString()[:8])
	u.RawQuery = q.Encode()
	return u.String()
}
