package session

import (
	"encoding/json"

	"github.com/driftchat/driftchat/internal/protocol"
)

// EventType identifies a server event delivered to the client application.
type EventType int

const (
	// EventWaiting means no partner is available yet.
	EventWaiting EventType = iota

	// EventChatStart means a pairing formed; Chat is set.
	EventChatStart

	// EventMessage is a relayed chat line; Message is set.
	EventMessage

	// EventPartnerAway and EventPartnerBack are forwarded presence.
	EventPartnerAway
	EventPartnerBack

	// EventSkipped acknowledges our own skip.
	EventSkipped

	// EventPartnerLeft means the partner skipped away or disconnected.
	EventPartnerLeft

	// EventDropped means the transport was lost. The pairing, if any, is
	// already gone server-side; only a fresh connection and pairing is
	// possible.
	EventDropped
)

// Event is one server-side occurrence, decoded from the wire.
type Event struct {
	Type    EventType
	Chat    *protocol.ChatStartPayload
	Message *protocol.ReceiveMessagePayload
}

// Session is a live connection to the chat server, exposing typed
// operations for the wire events and a single stream of decoded server
// events.
type Session struct {
	client *Client
	events chan Event
}

// Dial connects to the server and starts routing events.
func Dial(serverURL string) (*Session, error) {
	client := NewClient(serverURL)
	if err := client.Connect(); err != nil {
		return nil, err
	}

	s := &Session{
		client: client,
		events: make(chan Event, 16),
	}
	go s.route()

	return s, nil
}

// route decodes incoming wire messages into Events. When the transport
// drops, a final EventDropped is emitted and the stream closes.
func (s *Session) route() {
	defer close(s.events)

	for msg := range s.client.Incoming() {
		switch msg.Type {

		case protocol.TypeWaiting:
			s.events <- Event{Type: EventWaiting}

		case protocol.TypeChatStart:
			var payload protocol.ChatStartPayload
			if msg.Payload != nil {
				json.Unmarshal(msg.Payload, &payload)
			}
			s.events <- Event{Type: EventChatStart, Chat: &payload}

		case protocol.TypeReceiveMessage:
			var payload protocol.ReceiveMessagePayload
			if msg.Payload != nil {
				json.Unmarshal(msg.Payload, &payload)
			}
			s.events <- Event{Type: EventMessage, Message: &payload}

		case protocol.TypePartnerAway:
			s.events <- Event{Type: EventPartnerAway}

		case protocol.TypePartnerBack:
			s.events <- Event{Type: EventPartnerBack}

		case protocol.TypeSkipped:
			s.events <- Event{Type: EventSkipped}

		case protocol.TypePartnerLeft:
			s.events <- Event{Type: EventPartnerLeft}

		default:
			// Unknown server events are ignored for forward compatibility.
		}
	}

	s.events <- Event{Type: EventDropped}
}

// Events returns the stream of decoded server events.
func (s *Session) Events() <-chan Event {
	return s.events
}

// FindPartner declares identity and requests a pairing.
func (s *Session) FindPartner(username string, interests []string) {
	s.client.SendMessage(protocol.New(protocol.TypeFindPartner, protocol.FindPartnerPayload{
		Username:  username,
		Interests: interests,
	}))
}

// SendChat relays one chat line to the current partner.
func (s *Session) SendChat(text string) {
	s.client.SendMessage(protocol.New(protocol.TypeSendMessage, protocol.SendMessagePayload{
		Message: text,
	}))
}

// Away signals the partner that we stepped away.
func (s *Session) Away() {
	s.client.SendMessage(protocol.New(protocol.TypeUserAway, nil))
}

// Back signals the partner that we returned.
func (s *Session) Back() {
	s.client.SendMessage(protocol.New(protocol.TypeUserBack, nil))
}

// Skip tears down the current pairing and immediately requests a new one.
func (s *Session) Skip() {
	s.client.SendMessage(protocol.New(protocol.TypeSkip, nil))
}

// Close shuts the session down.
func (s *Session) Close() {
	s.client.Close()
}
