package protocol

import "encoding/json"

// Message is the envelope for all C2S (Client to Server) and
// S2C (Server to Client) websocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants.
const (
	// Client to server.
	TypeFindPartner = "find-partner"
	TypeSendMessage = "send-message"
	TypeUserAway    = "user-away"
	TypeUserBack    = "user-back"
	TypeSkip        = "skip"

	// Server to client.
	TypeWaiting        = "waiting"
	TypeChatStart      = "chat-start"
	TypeReceiveMessage = "receive-message"
	TypePartnerAway    = "partner-away"
	TypePartnerBack    = "partner-back"
	TypeSkipped        = "skipped"
	TypePartnerLeft    = "partner-left"
)

// FindPartnerPayload declares (or refreshes) the sender's identity and asks
// for a partner. Missing fields are normalized server-side, never rejected.
type FindPartnerPayload struct {
	Username  string   `json:"username"`
	Interests []string `json:"interests"`
}

// ChatStartPayload tells both sides a pairing formed.
type ChatStartPayload struct {
	PartnerName     string   `json:"partnerName"`
	MutualInterests []string `json:"mutualInterests"`
}

// SendMessagePayload carries one chat line to the partner.
type SendMessagePayload struct {
	Message string `json:"message"`
}

// ReceiveMessagePayload is a relayed chat line.
type ReceiveMessagePayload struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// New builds a Message with its payload already marshaled. Payload types in
// this package cannot fail to marshal, so the error is swallowed.
func New(msgType string, payload any) *Message {
	msg := &Message{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err == nil {
			msg.Payload = raw
		}
	}
	return msg
}
