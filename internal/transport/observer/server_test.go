package observer

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestObserver_BroadcastReachesClient(t *testing.T) {
	s := NewServer(nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the connection to register before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.Broadcast([]byte(`{"tick":42}`))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"tick":42}` {
		t.Fatalf("got %q", msg)
	}
}

func TestObserver_SlowClientDropsOldest(t *testing.T) {
	s := NewServer(nil)
	_, ch := s.register()

	// Overfill the per-client channel; oldest frames should fall away.
	for i := 0; i < 20; i++ {
		s.Broadcast([]byte{byte(i)})
	}
	if len(ch) > cap(ch) {
		t.Fatalf("channel over capacity")
	}
	// Latest frame must still be queued somewhere in the window.
	var found bool
	for len(ch) > 0 {
		b := <-ch
		if b[0] == 19 {
			found = true
		}
	}
	if !found {
		t.Fatalf("latest broadcast was dropped in favour of stale frames")
	}
}

func TestObserver_BroadcastWithNoClients(t *testing.T) {
	s := NewServer(nil)
	s.Broadcast([]byte("x")) // must not panic or block
	if s.ClientCount() != 0 {
		t.Fatalf("phantom client")
	}
}
