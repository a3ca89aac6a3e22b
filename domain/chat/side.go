package chat

type Side int

const (
	Theirs Side = iota
	Mine
)

func (s Side) String() string {
	if s == Mine {
		return "mine"
	}
	return "theirs"
}

type ClassifiedMessage struct {
	Message
	Side Side
}

// Classify compares display names because live events carry no sender id.
// Two participants sharing a display name are both classified as Mine.
// A session without a display name owns nothing: the wire fallback name is never matched.
func Classify(message Message, session Session) Side {
	if session.DisplayName != "" && message.SenderName == session.DisplayName {
		return Mine
	}
	return Theirs
}
