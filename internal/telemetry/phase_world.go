package telemetry

import (
	"runewatch.ai/internal/telemetry/resolve"
)

// collectWorld fills the world section: environment, nearby actors and
// objects with resolved names, the ground-item registry view, and the
// projectile buffer drained for this tick.
func (e *Engine) collectWorld(snap *Snapshot) error {
	sec := &snap.World
	sec.Info = e.client.World()

	for _, npc := range e.client.NearbyNPCs() {
		name := npc.Name
		tier := resolve.TierExact
		if name == "" {
			res := e.resolver.Name(resolve.KindNPC, npc.ID)
			name, tier = res.Name, res.Tier
		}
		sec.NPCs = append(sec.NPCs, NamedNPC{NPC: npc, ResolvedName: name, Tier: tier})
	}

	sec.Players = e.client.NearbyPlayers()

	for _, obj := range e.client.GameObjects() {
		res := e.resolver.Name(resolve.KindObject, obj.ID)
		sec.Objects = append(sec.Objects, NamedObject{GameObject: obj, Name: res.Name, Tier: res.Tier})
	}

	viewer := snap.Player.State.Name
	e.ground.Sweep()
	visible := e.ground.VisibleTo(viewer)
	for i := range visible {
		if visible[i].Name == "" {
			visible[i].Name = e.resolver.Name(resolve.KindItem, visible[i].ItemID).Name
		}
	}
	sec.GroundItems.Visible = visible
	sec.GroundItems.Stats = e.ground.Statistics(viewer)
	if snap.Player.Present {
		if nearest, ok := e.ground.Nearest(viewer, -1, snap.Player.State.Pos); ok {
			if nearest.Name == "" {
				nearest.Name = e.resolver.Name(resolve.KindItem, nearest.ItemID).Name
			}
			sec.GroundItems.Nearest = &nearest
		}
	}

	sec.Projectiles = e.buffers.Projectiles.Drain()
	return nil
}
