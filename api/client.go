// Package api is the request/response side of the chat backend.
// Credentials travel as a session cookie held by the shared cookie jar.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"talent-chat/errors"
)

const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return errors.ErrUnexpectedStatus
}

// NewSessionHTTPClient returns an HTTP client whose jar already carries the session cookie
// for baseURL. The same client is shared with the live channel so both sides authenticate alike.
func NewSessionHTTPClient(baseURL, cookieName, cookieValue string, timeout time.Duration) (*http.Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if cookieName != "" && cookieValue != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: cookieValue, Path: "/"}})
	}
	return &http.Client{Jar: jar, Timeout: timeout}, nil
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
}

func NewClient(log *slog.Logger, baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient, log: log}, nil
}

// GetChat returns the stored conversation with counterpartID.
// A conversation that does not exist yet is returned empty, not as an error.
func (c *Client) GetChat(ctx context.Context, counterpartID string) (ChatRecord, error) {
	var envelope chatEnvelope
	if err := c.getJSON(ctx, &envelope, "api", "chat", counterpartID); err != nil {
		return ChatRecord{}, err
	}
	if envelope.Chat == nil {
		return ChatRecord{}, nil
	}
	return *envelope.Chat, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (UserProfile, error) {
	var envelope userEnvelope
	if err := c.getJSON(ctx, &envelope, "api", "user", userID); err != nil {
		return UserProfile{}, err
	}
	return envelope.User, nil
}

func (c *Client) ListChats(ctx context.Context) ([]ChatSummaryRecord, error) {
	var envelope chatsEnvelope
	if err := c.getJSON(ctx, &envelope, "api", "chat"); err != nil {
		return nil, err
	}
	if envelope.Chats == nil {
		return []ChatSummaryRecord{}, nil
	}
	return envelope.Chats, nil
}

func (c *Client) getJSON(ctx context.Context, out any, elements ...string) error {
	u := c.baseURL.JoinPath(elements...)
	route := u.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", route, err)
	}
	defer resp.Body.Close()
	c.log.Debug("api request", "route", route, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		return fmt.Errorf("GET %s: %w", route, &StatusError{Code: resp.StatusCode, Message: envelope.Message})
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", route, err)
	}
	return nil
}
