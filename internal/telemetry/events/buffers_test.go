package events

import (
	"sync"
	"testing"
	"time"
)

func TestBuffer_PushDrainOrder(t *testing.T) {
	b := NewBuffer[int](8)
	for i := 1; i <= 5; i++ {
		b.Push(i)
	}
	got := b.Drain()
	if len(got) != 5 {
		t.Fatalf("drained %d entries, want 5", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("entry %d = %d, want %d", i, v, i+1)
		}
	}
	if b.Len() != 0 {
		t.Fatalf("buffer not empty after drain: %d", b.Len())
	}
}

func TestBuffer_EvictsOldestAtCapacity(t *testing.T) {
	b := NewBuffer[int](3)
	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.Push(4)
	if b.Len() != 3 {
		t.Fatalf("len = %d, want capacity 3", b.Len())
	}
	got := b.Drain()
	want := []int{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if b.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", b.Dropped())
	}
}

func TestBuffer_PeekLeavesEntries(t *testing.T) {
	b := NewBuffer[string](4)
	b.Push("a")
	b.Push("b")
	if got := b.Peek(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("peek = %v", got)
	}
	if b.Len() != 2 {
		t.Fatalf("peek cleared the buffer")
	}
}

func TestBuffer_ConcurrentProducers(t *testing.T) {
	b := NewBuffer[int](64)
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Push(i)
			}
		}()
	}
	wg.Wait()
	if b.Len() != 64 {
		t.Fatalf("len = %d, want full capacity 64", b.Len())
	}
	if b.Dropped() != 800-64 {
		t.Fatalf("dropped = %d, want %d", b.Dropped(), 800-64)
	}
}

func TestBuffers_TotalDropped(t *testing.T) {
	bufs := NewBuffers(Capacities{
		Chat: 1, StatChange: 1, Hitsplat: 1, Animation: 1, Interaction: 1,
		Projectile: 1, MenuClick: 1, KeyPress: 1, MouseClick: 1,
	})
	now := time.Now()
	bufs.Chat.Push(ChatMessage{Timestamp: now, Text: "one"})
	bufs.Chat.Push(ChatMessage{Timestamp: now, Text: "two"})
	bufs.Hitsplats.Push(Hitsplat{Timestamp: now, Amount: 3})
	bufs.Hitsplats.Push(Hitsplat{Timestamp: now, Amount: 7})
	bufs.Hitsplats.Push(Hitsplat{Timestamp: now, Amount: 11})
	if got := bufs.TotalDropped(); got != 3 {
		t.Fatalf("total dropped = %d, want 3", got)
	}
	msgs := bufs.Chat.Drain()
	if len(msgs) != 1 || msgs[0].Text != "two" {
		t.Fatalf("oldest chat entry should have been evicted, got %v", msgs)
	}
}
