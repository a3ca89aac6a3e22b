package errors

import (
	goerrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Validation
	ErrEmptyMessage       = fmt.Errorf("message is empty")
	ErrMessageTooLong     = fmt.Errorf("message too long (max 1000 characters)")
	ErrMissingSession     = fmt.Errorf("please log in to use chat")
	ErrMissingCounterpart = fmt.Errorf("no target user provided")

	// Session token
	ErrInvalidToken  = fmt.Errorf("invalid session token")
	ErrMissingSecret = fmt.Errorf("session secret is not configured")

	// Channel
	ErrNotConnected     = fmt.Errorf("chat connection is not open")
	ErrNotJoined        = fmt.Errorf("chat room has not been joined")
	ErrAlreadyJoined    = fmt.Errorf("chat room already joined")
	ErrConnectRejected  = fmt.Errorf("chat connection rejected")
	ErrConnectionLost   = fmt.Errorf("chat connection lost")
	ErrNoTransport      = fmt.Errorf("no chat transport available")
	ErrTransportClosed  = fmt.Errorf("transport closed")
	ErrMalformedPacket  = fmt.Errorf("malformed packet")
	ErrUnexpectedPacket = fmt.Errorf("unexpected packet")

	// Request/response
	ErrUnexpectedStatus         = fmt.Errorf("unexpected status")
	ErrHistoryUnavailable       = fmt.Errorf("unable to load chat messages")
	ErrConversationsUnavailable = fmt.Errorf("unable to fetch chat history")
)

// noticeErrors are the errors whose message is already fit for a user-facing notice.
var noticeErrors = []error{
	ErrEmptyMessage,
	ErrMessageTooLong,
	ErrMissingSession,
	ErrMissingCounterpart,
	ErrNotConnected,
	ErrNotJoined,
	ErrConnectRejected,
	ErrConnectionLost,
	ErrNoTransport,
	ErrHistoryUnavailable,
	ErrConversationsUnavailable,
}

// NoticeText converts an error into the short text shown to the user.
// Unknown errors collapse to a generic sentence so transport details never leak into the UI.
func NoticeText(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range noticeErrors {
		if goerrors.Is(err, known) {
			return capitalize(known.Error())
		}
	}
	return "Something went wrong, please try again"
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
