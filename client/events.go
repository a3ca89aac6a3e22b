package client

// Live channel event names. The payload field names are fixed by the backend.
const (
	EventJoinChat        = "joinChat"
	EventSendMessage     = "sendMessage"
	EventMessageReceived = "messageReceived"
	EventMessageError    = "messageError"
)

type JoinChatPayload struct {
	FirstName    string `json:"firstName"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
}

type SendMessagePayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
	Text         string `json:"text"`
}

type MessageReceivedPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Text      string `json:"text"`
}

type MessageErrorPayload struct {
	Error string `json:"error"`
}
