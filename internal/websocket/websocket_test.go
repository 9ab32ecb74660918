package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		categoryID, _ := strconv.Atoi(r.URL.Query().Get("category"))
		client := NewClient(hub, conn, categoryID)
		hub.Register(client)
		go client.ReadPump()
		go client.WritePump()
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, domain.Question) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	var q domain.Question
	if err := json.Unmarshal(msg.Payload, &q); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	return msg.Type, q
}

func TestPublishFiltersByCategory(t *testing.T) {
	hub, srv := newTestHub(t)

	all := dial(t, srv, "")
	science := dial(t, srv, "category=1")
	waitForClients(t, hub, 2)

	hub.Publish(EventQuestionCreated, domain.Question{ID: 7, Question: "q", Answer: "a", Category: 2})
	hub.Publish(EventQuestionDeleted, domain.Question{ID: 8, Question: "q", Answer: "a", Category: 1})

	typ, q := readEvent(t, all)
	if typ != EventQuestionCreated || q.ID != 7 {
		t.Errorf("all: got %s %d, want created 7", typ, q.ID)
	}
	typ, q = readEvent(t, all)
	if typ != EventQuestionDeleted || q.ID != 8 {
		t.Errorf("all: got %s %d, want deleted 8", typ, q.ID)
	}

	// The category 2 event is never delivered to the category 1 subscriber
	typ, q = readEvent(t, science)
	if typ != EventQuestionDeleted || q.ID != 8 {
		t.Errorf("science: got %s %d, want deleted 8", typ, q.ID)
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv, "")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestPublishAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(EventQuestionCreated, domain.Question{ID: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked after the hub stopped")
	}
}
