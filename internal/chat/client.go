package chat

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/driftchat/driftchat/internal/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Chat lines are small.
	maxMessageSize = 8 * 1024
)

// ConnState is the lifecycle state of a connection. Waiting and Paired are
// mutually exclusive; a disconnect from either triggers teardown.
type ConnState int

const (
	StateConnected ConnState = iota
	StateIdentified
	StateWaiting
	StatePaired
)

// Client wraps a single websocket connection. The identity fields (Name,
// Interests) and State are written only by the hub run loop.
type Client struct {
	// Hub is the hub that manages this client.
	Hub *Hub

	// Conn is the websocket connection.
	Conn *websocket.Conn

	// ID is the opaque connection identifier assigned at upgrade time.
	ID string

	// Name is the declared display name, normalized by the registry.
	Name string

	// Interests is the declared interest tag list, normalized.
	Interests []string

	// State is the current lifecycle state.
	State ConnState

	// Send is a buffered channel of outbound messages. The hub writes to
	// it and WritePump drains it onto the websocket.
	Send chan *protocol.Message
}

// ReadPump pumps messages from the websocket connection to the hub.
//
// The application runs ReadPump in a per-connection goroutine, ensuring at
// most one reader per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.Message
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Debug("read error", "conn", c.ID, "error", err)
			}
			break
		}

		c.Hub.Inbound <- &Event{Client: c, Msg: &msg}
	}
}

// WritePump pumps messages from the hub to the websocket connection and
// keeps the connection alive with periodic pings.
//
// A goroutine running WritePump is started per connection, ensuring at most
// one writer per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				slog.Debug("write error", "conn", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
