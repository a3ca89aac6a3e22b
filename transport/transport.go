// Package transport establishes the live channel to the chat backend.
// Websocket is preferred; HTTP long-polling is used when the upgrade is refused.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"talent-chat/contract"
	"talent-chat/engineio"
	"talent-chat/errors"
)

const (
	Websocket = "websocket"
	Polling   = "polling"

	DefaultPath             = "/socket.io/"
	defaultHandshakeTimeout = 10 * time.Second
)

type Dialer struct {
	log        *slog.Logger
	baseURL    *url.URL
	httpClient *http.Client
	transports []string
	path       string
}

type Option func(*Dialer)

// WithTransports restricts and orders the transports tried by Dial.
func WithTransports(names ...string) Option {
	return func(d *Dialer) { d.transports = names }
}

func WithPath(path string) Option {
	return func(d *Dialer) { d.path = path }
}

// NewDialer builds a dialer for baseURL. httpClient carries the cookie jar holding the session;
// it is used as-is by the polling transport and its jar is handed to the websocket handshake.
func NewDialer(log *slog.Logger, baseURL string, httpClient *http.Client, opts ...Option) (*Dialer, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	d := &Dialer{
		log:        log,
		baseURL:    u,
		httpClient: httpClient,
		transports: []string{Websocket, Polling},
		path:       DefaultPath,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dial tries each transport in order and returns the first one whose handshake succeeds.
func (d *Dialer) Dial(ctx context.Context) (contract.Transport, error) {
	var lastErr error
	for _, name := range d.transports {
		t, err := d.dial(ctx, name)
		if err == nil {
			d.log.Debug("transport established", "transport", name, "sid", t.Handshake().SID)
			return t, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.log.Warn("transport unavailable, falling back", "transport", name, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		return nil, errors.ErrNoTransport
	}
	return nil, fmt.Errorf("%w: %w", errors.ErrNoTransport, lastErr)
}

func (d *Dialer) dial(ctx context.Context, name string) (contract.Transport, error) {
	switch name {
	case Websocket:
		return dialWebsocket(ctx, d.endpoint(Websocket), d.httpClient.Jar)
	case Polling:
		return dialPolling(ctx, d.endpoint(Polling), d.httpClient)
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}

func (d *Dialer) endpoint(transport string) *url.URL {
	u := *d.baseURL
	u.Path = strings.TrimSuffix(d.baseURL.Path, "/") + d.path
	if transport == Websocket {
		switch u.Scheme {
		case "https":
			u.Scheme = "wss"
		default:
			u.Scheme = "ws"
		}
	}
	q := url.Values{}
	q.Set("EIO", engineio.Protocol)
	q.Set("transport", transport)
	u.RawQuery = q.Encode()
	return &u
}
