package telemetry

import (
	"time"

	"runewatch.ai/internal/hostapi"
	"runewatch.ai/internal/telemetry/diff"
	"runewatch.ai/internal/telemetry/resolve"
)

// collectPlayer fills the player section: identity, skills, containers,
// and all three diffs against the previous tick. The previous-state cache
// is committed only at the end, after every diff succeeded, so a failure
// here leaves the cache describing the last good tick.
func (e *Engine) collectPlayer(snap *Snapshot) error {
	if e.client.GameState() != hostapi.StateLoggedIn {
		return nil
	}
	state, ok := e.client.LocalPlayer()
	if !ok {
		return nil
	}
	sec := &snap.Player
	sec.Present = true
	sec.State = state
	sec.Skills = e.client.Skills()
	sec.ActivePrayers = e.client.ActivePrayers()
	sec.SelectedSpell = e.client.SelectedSpell()

	// Inventory: copy out, resolve names, classify noted stacks.
	stacks := e.client.Inventory()
	current := make(map[int]int, len(stacks))
	for _, st := range stacks {
		if st.ID <= 0 || st.Quantity <= 0 {
			continue
		}
		current[st.ID] += st.Quantity
		res := e.resolver.Name(resolve.KindItem, st.ID)
		verdict := e.resolver.ClassifyNoted(st.ID, e.log)
		sec.Inventory = append(sec.Inventory, NamedStack{
			ItemStack: st,
			Name:      res.Name,
			Tier:      res.Tier,
			Noted:     verdict.Noted,
		})
		sec.InventorySummary.UsedSlots++
		sec.InventorySummary.TotalQuantity += int64(st.Quantity)
		if verdict.Noted {
			sec.InventorySummary.NotedItems++
		}
	}
	sec.InventoryDelta = diff.Inventory(e.prev.inventory, current, e.prices)

	equipment := e.client.Equipment()
	sec.Equipment = equipment
	sec.EquipmentDelta = diff.Equipment(e.prev.equipment, equipment)

	now := time.Now()
	elapsed := now.Sub(e.prev.posTime)
	sec.Movement = diff.Movement(e.prev.pos, state.Pos, e.prev.hasPos, elapsed)

	// Commit: all diffs for this tick succeeded.
	e.prev.inventory = current
	e.prev.equipment = equipment
	e.prev.pos = state.Pos
	e.prev.hasPos = true
	e.prev.posTime = now
	return nil
}
