package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/driftchat/driftchat/internal/chat"
	"github.com/driftchat/driftchat/internal/protocol"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := chat.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewMux(hub))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(protocol.New(msgType, payload)); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func recv(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg protocol.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return &msg
}

func recvType(t *testing.T, conn *websocket.Conn, want string) *protocol.Message {
	t.Helper()
	msg := recv(t, conn)
	if msg.Type != want {
		t.Fatalf("got %q event, want %q", msg.Type, want)
	}
	return msg
}

func TestHealth(t *testing.T) {
	srv := startTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsExposed(t *testing.T) {
	srv := startTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "driftchat_connected_clients") {
		t.Error("expected driftchat gauges in metrics output")
	}
}

func TestPairRelaySkipOverWebsocket(t *testing.T) {
	srv := startTestServer(t)

	alice := dial(t, srv)
	send(t, alice, protocol.TypeFindPartner, protocol.FindPartnerPayload{
		Username:  "Alice",
		Interests: []string{"music", "hiking"},
	})
	recvType(t, alice, protocol.TypeWaiting)

	bob := dial(t, srv)
	send(t, bob, protocol.TypeFindPartner, protocol.FindPartnerPayload{
		Username:  "Bob",
		Interests: []string{"hiking", "coding"},
	})

	// Pairing forms; both sides learn the partner name and the overlap.
	var start protocol.ChatStartPayload
	msg := recvType(t, bob, protocol.TypeChatStart)
	if err := json.Unmarshal(msg.Payload, &start); err != nil {
		t.Fatalf("decode chat-start: %v", err)
	}
	if start.PartnerName != "Alice" {
		t.Errorf("bob's partner = %q, want Alice", start.PartnerName)
	}
	if len(start.MutualInterests) != 1 || start.MutualInterests[0] != "hiking" {
		t.Errorf("mutualInterests = %v, want [hiking]", start.MutualInterests)
	}
	recvType(t, alice, protocol.TypeChatStart)

	// Relay is scoped to the pairing and carries the sender name.
	send(t, alice, protocol.TypeSendMessage, protocol.SendMessagePayload{Message: "hi!"})
	var received protocol.ReceiveMessagePayload
	msg = recvType(t, bob, protocol.TypeReceiveMessage)
	if err := json.Unmarshal(msg.Payload, &received); err != nil {
		t.Fatalf("decode receive-message: %v", err)
	}
	if received.Message != "hi!" || received.Sender != "Alice" {
		t.Errorf("received = %+v, want hi! from Alice", received)
	}

	// Presence is forwarded to the partner only.
	send(t, bob, protocol.TypeUserAway, nil)
	recvType(t, alice, protocol.TypePartnerAway)
	send(t, bob, protocol.TypeUserBack, nil)
	recvType(t, alice, protocol.TypePartnerBack)

	// Skip acknowledges the skipper and notifies the survivor once.
	send(t, alice, protocol.TypeSkip, nil)
	recvType(t, alice, protocol.TypeSkipped)
	recvType(t, alice, protocol.TypeWaiting)
	recvType(t, bob, protocol.TypePartnerLeft)
}

func TestDisconnectNotifiesPartner(t *testing.T) {
	srv := startTestServer(t)

	alice := dial(t, srv)
	send(t, alice, protocol.TypeFindPartner, protocol.FindPartnerPayload{Username: "Alice"})
	recvType(t, alice, protocol.TypeWaiting)

	bob := dial(t, srv)
	send(t, bob, protocol.TypeFindPartner, protocol.FindPartnerPayload{Username: "Bob"})
	recvType(t, bob, protocol.TypeChatStart)
	recvType(t, alice, protocol.TypeChatStart)

	alice.Close()

	recvType(t, bob, protocol.TypePartnerLeft)

	// Bob asks again and waits; the dead connection is never matched.
	send(t, bob, protocol.TypeFindPartner, protocol.FindPartnerPayload{Username: "Bob"})
	recvType(t, bob, protocol.TypeWaiting)
}
