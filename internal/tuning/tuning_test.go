package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := `
tick_duration_ms: 500
buffers:
  chat: 100
ground_items:
  owner_visible_ms: 30000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tune, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tune.TickDurationMs != 500 {
		t.Fatalf("tick duration = %d", tune.TickDurationMs)
	}
	if tune.Buffers.Chat != 100 {
		t.Fatalf("chat capacity = %d", tune.Buffers.Chat)
	}
	// Omitted fields fall back to defaults.
	if tune.Buffers.Hitsplat != 50 {
		t.Fatalf("hitsplat capacity = %d, want default 50", tune.Buffers.Hitsplat)
	}
	if tune.GroundItems.OwnerVisibleMs != 30000 {
		t.Fatalf("owner visible = %d", tune.GroundItems.OwnerVisibleMs)
	}
	if tune.GroundItems.DespawnMs != 180000 {
		t.Fatalf("despawn = %d, want default", tune.GroundItems.DespawnMs)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.TickDuration() != 600*time.Millisecond {
		t.Fatalf("tick duration = %s", d.TickDuration())
	}
	if d.Buffers.Chat != 50 || d.Perf.ReportIntervalMs != 30000 {
		t.Fatalf("defaults = %+v", d)
	}
}
