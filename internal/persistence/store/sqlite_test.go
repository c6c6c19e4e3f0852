package store

import (
	"path/filepath"
	"testing"
	"time"

	"runewatch.ai/internal/telemetry"
)

func testSnapshot(tick uint64) telemetry.Snapshot {
	return telemetry.Snapshot{
		SessionID:       "s_test",
		Tick:            tick,
		Timestamp:       time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Valid:           true,
		Quality:         1,
		ProcessingNanos: 1234,
		TimingNanos:     map[string]int64{"player": 100},
	}
}

func TestStore_WriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for tick := uint64(1); tick <= 3; tick++ {
		if !s.Enqueue(testSnapshot(tick)) {
			t.Fatalf("enqueue tick %d rejected", tick)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.Written() != 3 {
		t.Fatalf("written = %d, want 3", s.Written())
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	n, err := s2.Count("s_test")
	if err != nil || n != 3 {
		t.Fatalf("count = %d err=%v, want 3", n, err)
	}
	snap, err := s2.ReadPayload("s_test", 2)
	if err != nil {
		t.Fatalf("read payload: %v", err)
	}
	if snap.Tick != 2 || !snap.Valid || snap.ProcessingNanos != 1234 {
		t.Fatalf("round-tripped snapshot = %+v", snap)
	}
	if snap.TimingNanos["player"] != 100 {
		t.Fatalf("timing map lost in round trip")
	}
}

func TestStore_EnqueueAfterCloseDrops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = s.Close()
	if s.Enqueue(testSnapshot(1)) {
		t.Fatalf("enqueue after close must be rejected")
	}
}

func TestStore_UpsertSameTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Enqueue(testSnapshot(7))
	s.Enqueue(testSnapshot(7))
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if n, _ := s2.Count("s_test"); n != 1 {
		t.Fatalf("count = %d, want 1 (same tick upserts)", n)
	}
}
