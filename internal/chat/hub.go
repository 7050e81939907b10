package chat

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/driftchat/driftchat/internal/protocol"
)

// Event is a parsed client message handed to the hub for processing.
type Event struct {
	Client *Client
	Msg    *protocol.Message
}

// Hub is the central coordinator. It owns the connection registry, the
// waiting queue and the pairing table, and its Run loop is the only writer
// to any of them: every pairing formation, relay and teardown is processed
// as one indivisible step, so two simultaneous pairing requests can never
// both claim the same waiter.
type Hub struct {
	registry *Registry
	queue    *WaitQueue
	pairs    *PairTable

	// Register is a channel for registering new clients.
	Register chan *Client

	// Unregister is a channel for clients whose transport dropped.
	Unregister chan *Client

	// Inbound carries parsed client messages into the run loop.
	Inbound chan *Event

	logger *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		registry:   NewRegistry(),
		queue:      NewWaitQueue(),
		pairs:      NewPairTable(),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *Event),
		logger:     logger,
	}
}

// Run starts the hub's main processing loop. It returns when ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.Register:
			h.handleRegister(client)

		case client := <-h.Unregister:
			h.handleUnregister(client)

		case ev := <-h.Inbound:
			h.handleEvent(ev.Client, ev.Msg)
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.registry.Add(c)
	connectedClients.Inc()
	h.logger.Debug("client connected", "conn", c.ID)
}

// handleUnregister runs the full disconnect path: teardown of any pairing or
// queue entry, then removal of the registry record, in that order.
func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.registry.Get(c.ID); !ok {
		// Already gone; late duplicate from a racing pump shutdown.
		return
	}

	h.teardown(c)
	h.registry.Remove(c.ID)
	connectedClients.Dec()
	close(c.Send)
	h.logger.Debug("client disconnected", "conn", c.ID)
}

func (h *Hub) handleEvent(c *Client, msg *protocol.Message) {
	switch msg.Type {

	case protocol.TypeFindPartner:
		var payload protocol.FindPartnerPayload
		if msg.Payload != nil {
			// Malformed payloads degrade to defaults, never to an error.
			json.Unmarshal(msg.Payload, &payload)
		}
		h.registry.SetIdentity(c, payload.Username, payload.Interests)
		h.requestPairing(c)

	case protocol.TypeSendMessage:
		var payload protocol.SendMessagePayload
		if msg.Payload == nil || json.Unmarshal(msg.Payload, &payload) != nil {
			return
		}
		h.relay(c, payload.Message)

	case protocol.TypeUserAway:
		h.presence(c, protocol.TypePartnerAway)

	case protocol.TypeUserBack:
		h.presence(c, protocol.TypePartnerBack)

	case protocol.TypeSkip:
		h.skip(c)

	default:
		h.logger.Debug("unknown message type", "type", msg.Type, "conn", c.ID)
	}
}

// requestPairing matches the requester against the oldest waiter, or queues
// it if nobody is waiting. The whole step (queue removal, self-check, table
// insert, notifications) runs inside one hub iteration.
func (h *Hub) requestPairing(c *Client) {
	if c.State == StatePaired {
		// Duplicate request from an already paired client. Ignore.
		return
	}

	// Defensive: a duplicate request from a waiting client must not leave
	// two queue entries behind.
	h.queue.Remove(c)

	partner := h.queue.Pop()
	if partner == nil {
		h.enqueue(c)
		return
	}

	// A connection must never pair with itself. With the removal above this
	// is unreachable, but the guard is load-bearing: sloppier queue
	// bookkeeping under duplicate requests would otherwise corrupt the
	// table. No second match attempt is made here; the requester just
	// waits for the next request.
	if partner == c {
		h.enqueue(c)
		return
	}

	p := h.pairs.Form(c, partner)
	c.State = StatePaired
	partner.State = StatePaired
	waitingClients.Set(float64(h.queue.Len()))
	activePairings.Set(float64(h.pairs.Len()))
	pairingsFormed.Inc()

	c.Send <- protocol.New(protocol.TypeChatStart, protocol.ChatStartPayload{
		PartnerName:     partner.Name,
		MutualInterests: p.MutualInterests,
	})
	partner.Send <- protocol.New(protocol.TypeChatStart, protocol.ChatStartPayload{
		PartnerName:     c.Name,
		MutualInterests: p.MutualInterests,
	})

	h.logger.Info("pairing formed", "room", p.RoomID, "a", c.ID, "b", partner.ID)
}

func (h *Hub) enqueue(c *Client) {
	h.queue.Push(c)
	c.State = StateWaiting
	waitingClients.Set(float64(h.queue.Len()))
	c.Send <- protocol.New(protocol.TypeWaiting, nil)
}

// relay delivers a chat line to the sender's partner only. Senders with no
// active pairing are silently dropped: a skip or disconnect raced the
// message, which is not an error.
func (h *Hub) relay(c *Client, text string) {
	p, ok := h.pairs.Lookup(c.ID)
	if !ok {
		return
	}

	p.PartnerOf(c).Send <- protocol.New(protocol.TypeReceiveMessage, protocol.ReceiveMessagePayload{
		Message: text,
		Sender:  c.Name,
	})
	messagesRelayed.Inc()
}

// presence forwards an away/back signal to the partner while the pairing is
// live. No-op otherwise, mirroring relay.
func (h *Hub) presence(c *Client, partnerEvent string) {
	p, ok := h.pairs.Lookup(c.ID)
	if !ok {
		return
	}
	p.PartnerOf(c).Send <- protocol.New(partnerEvent, nil)
}

// teardown unwinds whatever the connection is doing: drops its pairing and
// notifies the surviving partner, or removes it from the waiting queue.
// Both table entries go before any notification. The partner is not
// requeued here; it waits until it asks to pair again. Idempotent.
func (h *Hub) teardown(c *Client) {
	if p, ok := h.pairs.Lookup(c.ID); ok {
		partner := p.PartnerOf(c)
		h.pairs.Drop(p)
		c.State = StateIdentified
		partner.State = StateIdentified
		activePairings.Set(float64(h.pairs.Len()))

		partner.Send <- protocol.New(protocol.TypePartnerLeft, nil)
		h.logger.Info("pairing ended", "room", p.RoomID, "left", c.ID)
		return
	}

	if h.queue.Remove(c) {
		c.State = StateIdentified
		waitingClients.Set(float64(h.queue.Len()))
	}
}

// skip is teardown plus an immediate fresh pairing request for the skipper.
// The old partner gets partner-left, the skipper gets skipped and then
// either waiting or chat-start.
func (h *Hub) skip(c *Client) {
	h.teardown(c)
	c.Send <- protocol.New(protocol.TypeSkipped, nil)
	skipsHandled.Inc()
	h.requestPairing(c)
}
