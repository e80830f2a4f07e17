package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoval/casbrief/pkg/logger"
)

func TestBroadcastReachesClient(t *testing.T) {
	s := NewServer(func(r *http.Request) bool { return true }, logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	t.Cleanup(srv.Close)
	t.Cleanup(s.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens in the handler goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	s.Broadcast(Message{
		Type: TypeReportUpdate,
		Data: map[string]interface{}{"session_id": "sess-1"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeReportUpdate {
		t.Errorf("type = %q, want %q", msg.Type, TypeReportUpdate)
	}
	if msg.Data["session_id"] != "sess-1" {
		t.Errorf("data = %+v", msg.Data)
	}
}

func TestCloseDisconnectsClients(t *testing.T) {
	s := NewServer(func(r *http.Request) bool { return true }, logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	s.Close()
	if s.ClientCount() != 0 {
		t.Errorf("clients = %d after close, want 0", s.ClientCount())
	}
}
