// Package grounditems tracks transient world objects (dropped items)
// through their spawn → owner-visible → public → removed lifecycle.
//
// The registry is keyed by (item id, location, spawn tick) so duplicate
// spawn notifications from the host are idempotent. Expired entries are
// swept lazily on query and eagerly via Sweep.
package grounditems

import (
	"math"
	"sort"
	"sync"
	"time"

	"runewatch.ai/internal/hostapi"
)

type Phase string

const (
	PhaseOwnerVisible Phase = "owner_visible"
	PhasePublic       Phase = "public"
)

type key struct {
	itemID    int
	pos       hostapi.Point
	spawnTick uint64
}

type Item struct {
	ItemID    int           `json:"item_id"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	Pos       hostapi.Point `json:"pos"`
	SpawnTick uint64        `json:"spawn_tick"`
	SpawnedAt time.Time     `json:"spawned_at"`
	Owner     string        `json:"owner,omitempty"` // empty when unknown
	Phase     Phase         `json:"phase"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type Tracker struct {
	mu      sync.Mutex
	entries map[key]*Item

	ownerWindow time.Duration
	despawn     time.Duration
	now         func() time.Time
}

func New(ownerWindow, despawn time.Duration) *Tracker {
	if despawn < ownerWindow {
		despawn = ownerWindow
	}
	return &Tracker{
		entries:     map[key]*Item{},
		ownerWindow: ownerWindow,
		despawn:     despawn,
		now:         time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// Track registers a spawn. Re-registering the same (item, location, spawn
// tick) tuple is a no-op: the host is expected to deliver duplicate
// notifications.
func (t *Tracker) Track(itemID int, name string, quantity int, pos hostapi.Point, spawnTick uint64, owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{itemID: itemID, pos: pos, spawnTick: spawnTick}
	if _, exists := t.entries[k]; exists {
		return
	}
	now := t.now()
	t.entries[k] = &Item{
		ItemID:    itemID,
		Name:      name,
		Quantity:  quantity,
		Pos:       pos,
		SpawnTick: spawnTick,
		SpawnedAt: now,
		Owner:     owner,
		ExpiresAt: now.Add(t.despawn),
	}
}

// Untrack removes an entry on an explicit despawn notification. Unknown
// tuples are ignored.
func (t *Tracker) Untrack(itemID int, pos hostapi.Point, spawnTick uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key{itemID: itemID, pos: pos, spawnTick: spawnTick})
}

// Sweep drops every entry whose expiry has passed and returns how many
// were removed.
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sweepLocked(t.now())
}

func (t *Tracker) sweepLocked(now time.Time) int {
	removed := 0
	for k, it := range t.entries {
		if now.After(it.ExpiresAt) {
			delete(t.entries, k)
			removed++
		}
	}
	return removed
}

func (t *Tracker) phaseOf(it *Item, now time.Time) Phase {
	if now.Sub(it.SpawnedAt) < t.ownerWindow {
		return PhaseOwnerVisible
	}
	return PhasePublic
}

// VisibleTo returns live items the viewer can see: public items plus the
// viewer's own items still inside the owner-visibility window. Items with
// no recorded owner are treated as public from spawn.
func (t *Tracker) VisibleTo(viewer string) []Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweepLocked(now)

	var out []Item
	for _, it := range t.entries {
		ph := t.phaseOf(it, now)
		if ph == PhaseOwnerVisible && it.Owner != "" && it.Owner != viewer {
			continue
		}
		cp := *it
		cp.Phase = ph
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SpawnTick != out[j].SpawnTick {
			return out[i].SpawnTick < out[j].SpawnTick
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

// Nearest returns the closest live item visible to the viewer, optionally
// restricted to one item id (pass itemID < 0 for any). Plane must match.
func (t *Tracker) Nearest(viewer string, itemID int, origin hostapi.Point) (Item, bool) {
	best := Item{}
	bestDist := math.MaxFloat64
	found := false
	for _, it := range t.VisibleTo(viewer) {
		if itemID >= 0 && it.ItemID != itemID {
			continue
		}
		if it.Pos.Plane != origin.Plane {
			continue
		}
		dx := float64(it.Pos.X - origin.X)
		dy := float64(it.Pos.Y - origin.Y)
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = it
			found = true
		}
	}
	return best, found
}

// NextToExpire returns the live item with the soonest expiry.
func (t *Tracker) NextToExpire() (Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweepLocked(now)

	var best *Item
	for _, it := range t.entries {
		if best == nil || it.ExpiresAt.Before(best.ExpiresAt) {
			best = it
		}
	}
	if best == nil {
		return Item{}, false
	}
	cp := *best
	cp.Phase = t.phaseOf(best, now)
	return cp, true
}

type Stats struct {
	Total    int            `json:"total"`
	Mine     int            `json:"mine"`
	Others   int            `json:"others"`
	Unowned  int            `json:"unowned"`
	ByItemID map[int]int    `json:"by_item_id,omitempty"`
	ByOwner  map[string]int `json:"by_owner,omitempty"`
}

// Statistics counts live entries by owner and item id relative to the
// given viewer.
func (t *Tracker) Statistics(viewer string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweepLocked(t.now())

	s := Stats{ByItemID: map[int]int{}, ByOwner: map[string]int{}}
	for _, it := range t.entries {
		s.Total++
		s.ByItemID[it.ItemID]++
		switch {
		case it.Owner == "":
			s.Unowned++
		case it.Owner == viewer:
			s.Mine++
			s.ByOwner[it.Owner]++
		default:
			s.Others++
			s.ByOwner[it.Owner]++
		}
	}
	return s
}

// Len reports the number of live entries without sweeping.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
