// Package observer streams finalized snapshots to websocket clients. A
// slow consumer drops frames (latest-wins) instead of backpressuring the
// tick thread.
package observer

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.Mutex
	clients map[uint64]chan []byte
}

func NewServer(logger *log.Logger) *Server {
	return &Server{
		log:     logger,
		clients: map[uint64]chan []byte{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// Broadcast fans one encoded snapshot out to every connected client.
// Never blocks: a client whose channel is full loses its oldest frame.
func (s *Server) Broadcast(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.clients {
		sendLatest(ch, payload)
	}
}

// ClientCount reports connected observers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

func (s *Server) register() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, 8)
	s.mu.Lock()
	s.clients[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *Server) unregister(id uint64) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out := s.register()
		defer s.unregister(id)
		if s.log != nil {
			s.log.Printf("observer %d connected from %s", id, r.RemoteAddr)
		}

		done := make(chan struct{})

		// Reader loop: observers send nothing meaningful; we only watch
		// for close.
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}
