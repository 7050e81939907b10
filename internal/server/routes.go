package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftchat/driftchat/internal/chat"
	"github.com/driftchat/driftchat/internal/protocol"
)

// Configure the websocket upgrader. Chat messages are small.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 4 * 1024,

	// The client is a CLI, not a browser, so there is no meaningful Origin
	// to check.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewMux wires up the full route table: the websocket endpoint, a health
// probe and Prometheus metrics.
func NewMux(hub *chat.Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ws", ServeWs(hub))
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ServeWs returns an http.HandlerFunc that upgrades the connection, assigns
// it an opaque ID and hands it to the hub.
func ServeWs(hub *chat.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("failed to upgrade connection", "error", err)
			return
		}

		client := &chat.Client{
			Hub:  hub,
			Conn: conn,
			ID:   uuid.NewString(),
			Send: make(chan *protocol.Message, 256),
		}

		client.Hub.Register <- client

		// Per-connection pump goroutines; ReadPump owns unregistration.
		go client.WritePump()
		go client.ReadPump()
	}
}
