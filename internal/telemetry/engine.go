// Package telemetry implements the tick-synchronized collection engine:
// once per game tick it extracts a structured snapshot of live host state
// through a fixed sequence of isolated phases.
//
// Collect must only be called from the host's simulation thread. Event
// intake (the On* methods) is safe from any thread: it only pushes into
// bounded buffers and never touches collection state.
package telemetry

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"runewatch.ai/internal/hostapi"
	"runewatch.ai/internal/telemetry/diff"
	"runewatch.ai/internal/telemetry/events"
	"runewatch.ai/internal/telemetry/grounditems"
	"runewatch.ai/internal/telemetry/perf"
	"runewatch.ai/internal/telemetry/resolve"
	"runewatch.ai/internal/tuning"
)

// phase order is fixed; each phase fills one snapshot section.
var phaseOrder = []string{
	"player", "world", "input", "combat", "social", "interface", "system",
}

// previousState is the engine-owned cache of last tick's diffable state.
// Single writer: the orchestrator thread, and only after a successful
// diff.
type previousState struct {
	inventory map[int]int
	equipment map[hostapi.EquipmentSlot]int

	pos     hostapi.Point
	hasPos  bool
	posTime time.Time
}

type Config struct {
	Client hostapi.Client
	Tuning tuning.Tuning
	Logger *log.Logger
	Prices diff.PriceOracle // optional, best-effort
}

type Engine struct {
	client hostapi.Client
	tune   tuning.Tuning
	log    *log.Logger
	prices diff.PriceOracle

	buffers  *events.Buffers
	resolver *resolve.Resolver
	ground   *grounditems.Tracker
	monitor  *perf.Monitor

	prev previousState

	startedAt time.Time
	warmed    bool
	closed    atomic.Bool

	// input-phase accumulators (orchestrator thread only)
	sessionDistance float64
	teleportCount   int
	idleTicks       uint64
}

func New(cfg Config) *Engine {
	t := cfg.Tuning
	e := &Engine{
		client: cfg.Client,
		tune:   t,
		log:    cfg.Logger,
		prices: cfg.Prices,
		buffers: events.NewBuffers(events.Capacities{
			Chat:        t.Buffers.Chat,
			StatChange:  t.Buffers.StatChange,
			Hitsplat:    t.Buffers.Hitsplat,
			Animation:   t.Buffers.Animation,
			Interaction: t.Buffers.Interaction,
			Projectile:  t.Buffers.Projectile,
			MenuClick:   t.Buffers.MenuClick,
			KeyPress:    t.Buffers.KeyPress,
			MouseClick:  t.Buffers.MouseClick,
		}),
		resolver: resolve.New(cfg.Client),
		ground: grounditems.New(
			time.Duration(t.GroundItems.OwnerVisibleMs)*time.Millisecond,
			time.Duration(t.GroundItems.DespawnMs)*time.Millisecond,
		),
		monitor: perf.NewMonitor(
			time.Duration(t.Perf.ReportIntervalMs)*time.Millisecond,
			cfg.Logger,
		),
		prev: previousState{
			inventory: map[int]int{},
			equipment: map[hostapi.EquipmentSlot]int{},
		},
		startedAt: time.Now(),
	}
	return e
}

// Monitor exposes the performance counters for reporting.
func (e *Engine) Monitor() *perf.Monitor { return e.monitor }

// GroundItems exposes the ephemeral object registry for queries outside
// the tick (overlays, debugging).
func (e *Engine) GroundItems() *grounditems.Tracker { return e.ground }

// Resolver exposes name resolution for collaborators.
func (e *Engine) Resolver() *resolve.Resolver { return e.resolver }

// Shutdown is idempotent; Collect afterwards reports no output.
func (e *Engine) Shutdown() { e.closed.Store(true) }

// Collect produces the snapshot for one tick. ok=false only in the
// shutdown state; every other failure mode still yields a snapshot, at
// worst an identity-only record with Valid=false.
func (e *Engine) Collect(sessionID string, tick uint64) (Snapshot, bool) {
	if e.closed.Load() {
		return Snapshot{}, false
	}
	start := time.Now()

	if !e.warmed {
		e.warmed = true
		e.warmup()
	}

	snap := Snapshot{
		SessionID:   sessionID,
		Tick:        tick,
		Timestamp:   start,
		Valid:       true,
		TimingNanos: make(map[string]int64, len(phaseOrder)),
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				// Assembly failure outside any phase guard: degrade to an
				// identity-only snapshot instead of unwinding into the host.
				if e.log != nil {
					e.log.Printf("tick %d: pipeline failure: %v", tick, r)
				}
				snap = Snapshot{
					SessionID:   sessionID,
					Tick:        tick,
					Timestamp:   start,
					Valid:       false,
					PhaseErrors: []string{fmt.Sprintf("pipeline: %v", r)},
					TimingNanos: map[string]int64{},
				}
			}
		}()

		e.runPhase(&snap, "player", e.collectPlayer)
		e.runPhase(&snap, "world", e.collectWorld)
		e.runPhase(&snap, "input", e.collectInput)
		e.runPhase(&snap, "combat", e.collectCombat)
		e.runPhase(&snap, "social", e.collectSocial)
		e.runPhase(&snap, "interface", e.collectInterface)
		e.runPhase(&snap, "system", e.collectSystem)

		snap.Quality = quality(&snap)
	}()

	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	snap.ProcessingNanos = elapsed.Nanoseconds()
	e.monitor.RecordTick(elapsed)
	return snap, true
}

// runPhase is the bulkhead: one phase's panic or error degrades its own
// section to zero values and never reaches a neighbouring phase.
func (e *Engine) runPhase(snap *Snapshot, name string, fn func(*Snapshot) error) {
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn(snap)
	}()
	elapsed := time.Since(start)

	snap.TimingNanos[name] = elapsed.Nanoseconds()
	e.monitor.RecordPhase(name, elapsed)

	if err != nil {
		snap.PhaseErrors = append(snap.PhaseErrors, fmt.Sprintf("%s: %v", name, err))
		if e.log != nil {
			e.log.Printf("phase %s failed: %v", name, err)
		}
	}
}

// quality scores a snapshot by the fraction of phases that completed.
func quality(snap *Snapshot) float64 {
	failed := len(snap.PhaseErrors)
	if failed > len(phaseOrder) {
		failed = len(phaseOrder)
	}
	return float64(len(phaseOrder)-failed) / float64(len(phaseOrder))
}

// warmup pre-touches reusable containers and makes a few representative
// host calls so tick 1 does not pay first-use costs. Best effort.
func (e *Engine) warmup() {
	defer func() { _ = recover() }()
	if e.client == nil {
		return
	}
	_ = e.client.GameState()
	_, _ = e.client.LocalPlayer()
	_ = e.client.Inventory()
	_ = e.client.NearbyNPCs()
	_, _ = e.client.ItemComposition(995)
	_ = e.resolver.Name(resolve.KindItem, 995)
}

// ---- async event intake (host notification threads) ----

func (e *Engine) OnChat(msg events.ChatMessage) { e.buffers.Chat.Push(msg) }

func (e *Engine) OnStatChange(ev events.StatChange) { e.buffers.StatChanges.Push(ev) }

func (e *Engine) OnHitsplat(ev events.Hitsplat) { e.buffers.Hitsplats.Push(ev) }

func (e *Engine) OnAnimationChange(ev events.AnimationChange) { e.buffers.Animations.Push(ev) }

func (e *Engine) OnInteractionChange(ev events.InteractionChange) { e.buffers.Interactions.Push(ev) }

func (e *Engine) OnProjectileMoved(ev events.ProjectileMoved) { e.buffers.Projectiles.Push(ev) }

func (e *Engine) OnMenuClick(ev events.MenuClick) { e.buffers.MenuClicks.Push(ev) }

func (e *Engine) OnKeyPress(ev events.KeyPress) { e.buffers.KeyPresses.Push(ev) }

func (e *Engine) OnMouseClick(ev events.MouseClick) { e.buffers.MouseClicks.Push(ev) }

// OnItemSpawned registers a ground item spawn with the ephemeral tracker.
// Duplicate notifications are expected and idempotent. The friendly name
// is left blank here: spawn notifications arrive on host notification
// threads, where composition lookups are off limits; the world phase
// resolves names when it copies items into the snapshot.
func (e *Engine) OnItemSpawned(itemID, quantity int, pos hostapi.Point, spawnTick uint64, owner string) {
	e.ground.Track(itemID, "", quantity, pos, spawnTick, owner)
}

// OnItemDespawned removes a ground item on an explicit despawn.
func (e *Engine) OnItemDespawned(itemID int, pos hostapi.Point, spawnTick uint64) {
	e.ground.Untrack(itemID, pos, spawnTick)
}
