package telemetry

import (
	"runewatch.ai/internal/telemetry/resolve"
)

// collectCombat drains the combat event buffers and derives damage totals
// and the current interaction target.
func (e *Engine) collectCombat(snap *Snapshot) error {
	sec := &snap.Combat

	sec.Hitsplats = e.buffers.Hitsplats.Drain()
	sec.Animations = e.buffers.Animations.Drain()
	sec.Interactions = e.buffers.Interactions.Drain()
	sec.StatChanges = e.buffers.StatChanges.Drain()

	for _, h := range sec.Hitsplats {
		if h.OnLocal {
			sec.DamageTaken += h.Amount
		} else {
			sec.DamageDealt += h.Amount
		}
	}

	if snap.Player.Present && snap.Player.State.InteractingID > 0 {
		sec.TargetID = snap.Player.State.InteractingID
		// Prefer the nearby-actor name the world phase already carries.
		for _, npc := range snap.World.NPCs {
			if npc.Index == sec.TargetID {
				sec.TargetName = npc.ResolvedName
				break
			}
		}
		if sec.TargetName == "" {
			sec.TargetName = e.resolver.Name(resolve.KindNPC, sec.TargetID).Name
		}
	}

	sec.InCombat = sec.TargetID > 0 || len(sec.Hitsplats) > 0
	return nil
}
