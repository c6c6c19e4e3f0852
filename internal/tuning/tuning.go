package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every operator-adjustable knob of the engine. Zero fields
// are replaced with defaults at load time so a partial tuning.yaml is fine.
type Tuning struct {
	TickDurationMs int `yaml:"tick_duration_ms"`

	Buffers BufferCaps `yaml:"buffers"`

	GroundItems GroundItems `yaml:"ground_items"`

	Perf Perf `yaml:"perf"`

	Pricing Pricing `yaml:"pricing"`

	StorePath    string `yaml:"store_path"`
	ArchiveDir   string `yaml:"archive_dir"`
	ObserverAddr string `yaml:"observer_addr"`
}

// BufferCaps sets the capacity of each bounded event buffer. A buffer at
// capacity evicts its oldest entry to admit the newest.
type BufferCaps struct {
	Chat        int `yaml:"chat"`
	StatChange  int `yaml:"stat_change"`
	Hitsplat    int `yaml:"hitsplat"`
	Animation   int `yaml:"animation"`
	Interaction int `yaml:"interaction"`
	Projectile  int `yaml:"projectile"`
	MenuClick   int `yaml:"menu_click"`
	KeyPress    int `yaml:"key_press"`
	MouseClick  int `yaml:"mouse_click"`
}

type GroundItems struct {
	OwnerVisibleMs int `yaml:"owner_visible_ms"`
	DespawnMs      int `yaml:"despawn_ms"`
}

type Perf struct {
	ReportIntervalMs int `yaml:"report_interval_ms"`
}

type Pricing struct {
	Endpoint   string `yaml:"endpoint"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	CacheTTLMs int    `yaml:"cache_ttl_ms"`
}

func Defaults() Tuning {
	return Tuning{
		TickDurationMs: 600,
		Buffers: BufferCaps{
			Chat:        50,
			StatChange:  50,
			Hitsplat:    50,
			Animation:   50,
			Interaction: 50,
			Projectile:  50,
			MenuClick:   50,
			KeyPress:    50,
			MouseClick:  50,
		},
		GroundItems: GroundItems{
			OwnerVisibleMs: 60_000,
			DespawnMs:      180_000,
		},
		Perf: Perf{
			ReportIntervalMs: 30_000,
		},
		Pricing: Pricing{
			TimeoutMs:  2_000,
			CacheTTLMs: 300_000,
		},
		StorePath:    "./data/telemetry.db",
		ArchiveDir:   "./data/archive",
		ObserverAddr: "",
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.fillZeros()
	return t, nil
}

// fillZeros restores defaults for fields an operator zeroed or omitted.
func (t *Tuning) fillZeros() {
	d := Defaults()
	if t.TickDurationMs <= 0 {
		t.TickDurationMs = d.TickDurationMs
	}
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.Buffers.Chat, d.Buffers.Chat)
	fill(&t.Buffers.StatChange, d.Buffers.StatChange)
	fill(&t.Buffers.Hitsplat, d.Buffers.Hitsplat)
	fill(&t.Buffers.Animation, d.Buffers.Animation)
	fill(&t.Buffers.Interaction, d.Buffers.Interaction)
	fill(&t.Buffers.Projectile, d.Buffers.Projectile)
	fill(&t.Buffers.MenuClick, d.Buffers.MenuClick)
	fill(&t.Buffers.KeyPress, d.Buffers.KeyPress)
	fill(&t.Buffers.MouseClick, d.Buffers.MouseClick)
	fill(&t.GroundItems.OwnerVisibleMs, d.GroundItems.OwnerVisibleMs)
	fill(&t.GroundItems.DespawnMs, d.GroundItems.DespawnMs)
	fill(&t.Perf.ReportIntervalMs, d.Perf.ReportIntervalMs)
	fill(&t.Pricing.TimeoutMs, d.Pricing.TimeoutMs)
	fill(&t.Pricing.CacheTTLMs, d.Pricing.CacheTTLMs)
}

func (t Tuning) TickDuration() time.Duration {
	return time.Duration(t.TickDurationMs) * time.Millisecond
}
