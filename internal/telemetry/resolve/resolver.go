// Package resolve turns raw host ids into human-readable names through an
// ordered chain of strategies. Every tier is allowed to fail; the chain
// always ends with a synthetic label so callers never handle an empty name.
package resolve

import (
	"fmt"

	"runewatch.ai/internal/hostapi"
)

// Kind selects which id namespace a lookup targets.
type Kind string

const (
	KindItem   Kind = "item"
	KindObject Kind = "object"
	KindNPC    Kind = "npc"
)

// Tier reports how authoritative a resolved name is.
type Tier string

const (
	TierExact      Tier = "exact"      // direct composition lookup
	TierImpostor   Tier = "impostor"   // transformed/state-dependent variant
	TierTable      Tier = "table"      // curated static table
	TierRange      Tier = "range"      // id-band heuristic
	TierUnresolved Tier = "unresolved" // synthetic label, raw id embedded
)

type Resolution struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Tier     Tier   `json:"tier"`
}

// strategy returns ok=false to pass the lookup to the next tier.
type strategy func(kind Kind, id int) (Resolution, bool)

type Resolver struct {
	client hostapi.Client
	chain  []strategy
}

func New(client hostapi.Client) *Resolver {
	r := &Resolver{client: client}
	r.chain = []strategy{
		r.lookupExact,
		r.lookupImpostor,
		lookupTable,
		lookupRange,
	}
	return r
}

// Name resolves an id to a label and confidence tier. It never returns an
// empty name: when every tier misses, a synthetic label embedding the raw
// id is produced at TierUnresolved.
func (r *Resolver) Name(kind Kind, id int) Resolution {
	for _, s := range r.chain {
		if res, ok := runStrategy(s, kind, id); ok {
			return res
		}
	}
	return Resolution{
		Name: fmt.Sprintf("unknown_%s_%d", kind, id),
		Tier: TierUnresolved,
	}
}

// runStrategy keeps a panicking tier from killing the chain; a host fault
// in one tier just advances to the next.
func runStrategy(s strategy, kind Kind, id int) (res Resolution, ok bool) {
	defer func() {
		if recover() != nil {
			res, ok = Resolution{}, false
		}
	}()
	res, ok = s(kind, id)
	if ok && res.Name == "" {
		return Resolution{}, false
	}
	return res, ok
}

func (r *Resolver) lookupExact(kind Kind, id int) (Resolution, bool) {
	if r.client == nil {
		return Resolution{}, false
	}
	switch kind {
	case KindItem:
		if def, ok := r.client.ItemComposition(id); ok {
			return Resolution{Name: def.Name, Tier: TierExact}, true
		}
	case KindObject:
		if def, ok := r.client.ObjectComposition(id); ok {
			return Resolution{Name: def.Name, Tier: TierExact}, true
		}
	case KindNPC:
		if def, ok := r.client.NPCComposition(id); ok {
			return Resolution{Name: def.Name, Tier: TierExact}, true
		}
	}
	return Resolution{}, false
}

// lookupImpostor follows an object's state-dependent variant id. Only
// objects carry impostors; other kinds fall through.
func (r *Resolver) lookupImpostor(kind Kind, id int) (Resolution, bool) {
	if r.client == nil || kind != KindObject {
		return Resolution{}, false
	}
	def, ok := r.client.ObjectComposition(id)
	if !ok || def.ImpostorID < 0 || def.ImpostorID == id {
		return Resolution{}, false
	}
	imp, ok := r.client.ObjectComposition(def.ImpostorID)
	if !ok || imp.Name == "" {
		return Resolution{}, false
	}
	return Resolution{Name: imp.Name, Tier: TierImpostor}, true
}

func lookupTable(kind Kind, id int) (Resolution, bool) {
	var table map[int]tableEntry
	switch kind {
	case KindItem:
		table = wellKnownItems
	case KindObject:
		table = wellKnownObjects
	case KindNPC:
		table = wellKnownNPCs
	default:
		return Resolution{}, false
	}
	e, ok := table[id]
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Name: e.name, Category: e.category, Tier: TierTable}, true
}

func lookupRange(kind Kind, id int) (Resolution, bool) {
	if kind != KindObject {
		return Resolution{}, false
	}
	for _, band := range objectIDBands {
		if id >= band.lo && id <= band.hi {
			return Resolution{
				Name:     fmt.Sprintf("%s_%d", band.category, id),
				Category: band.category,
				Tier:     TierRange,
			}, true
		}
	}
	return Resolution{}, false
}
