package chat

import "talent-chat/errors"

// FallbackDisplayName is announced when the authenticated user has no display name.
const FallbackDisplayName = "User"

// Session is the authenticated identity, owned by the auth layer and used as-is.
type Session struct {
	UserID      string
	DisplayName string
}

func (s Session) Validate() error {
	if s.UserID == "" {
		return errors.ErrMissingSession
	}
	return nil
}

// Name is the display name sent on the wire and compared against message senders.
func (s Session) Name() string {
	if s.DisplayName == "" {
		return FallbackDisplayName
	}
	return s.DisplayName
}
