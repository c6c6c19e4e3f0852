package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_RefreshAndLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"4151":{"high":1600000,"low":1400000},"995":{"high":1,"low":0},"bad":{"high":5,"low":5}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, time.Minute, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if p, ok := c.PriceOf(4151); !ok || p != 1_500_000 {
		t.Fatalf("whip price = %d ok=%t, want midpoint 1500000", p, ok)
	}
	if p, ok := c.PriceOf(995); !ok || p != 1 {
		t.Fatalf("one-sided price = %d ok=%t", p, ok)
	}
	if _, ok := c.PriceOf(123456); ok {
		t.Fatalf("unknown id should miss")
	}
	if c.Stale() {
		t.Fatalf("fresh cache reported stale")
	}
}

func TestClient_FailureKeepsOldCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":{"385":{"high":900,"low":700}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh failure")
	}
	if p, ok := c.PriceOf(385); !ok || p != 800 {
		t.Fatalf("failed refresh clobbered the cache: %d %t", p, ok)
	}
}

func TestClient_EmptyEndpointNoop(t *testing.T) {
	c := NewClient("", time.Second, time.Minute, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("empty endpoint must be a no-op: %v", err)
	}
	if _, ok := c.PriceOf(1); ok {
		t.Fatalf("no prices expected")
	}
}

func TestStatic(t *testing.T) {
	s := Static{4151: 100}
	if p, ok := s.PriceOf(4151); !ok || p != 100 {
		t.Fatalf("static lookup failed")
	}
	if _, ok := s.PriceOf(1); ok {
		t.Fatalf("static miss expected")
	}
}
