package diff

import (
	"math"
	"testing"
	"time"

	"runewatch.ai/internal/hostapi"
)

type staticPrices map[int]int64

func (p staticPrices) PriceOf(id int) (int64, bool) {
	v, ok := p[id]
	return v, ok
}

type panicPrices struct{}

func (panicPrices) PriceOf(int) (int64, bool) { panic("oracle down") }

func TestInventory_ZeroToN_SingleAdd(t *testing.T) {
	d := Inventory(map[int]int{}, map[int]int{4151: 3}, nil)
	if d.ItemsAdded != 1 || d.ItemsRemoved != 0 {
		t.Fatalf("added=%d removed=%d, want 1/0", d.ItemsAdded, d.ItemsRemoved)
	}
	if d.QuantityGained != 3 || d.QuantityLost != 0 {
		t.Fatalf("gained=%d lost=%d, want 3/0", d.QuantityGained, d.QuantityLost)
	}
	if len(d.Added) != 1 || d.Added[0].ID != 4151 || d.Added[0].Delta != 3 {
		t.Fatalf("added = %+v", d.Added)
	}
}

func TestInventory_QuantityChange(t *testing.T) {
	d := Inventory(map[int]int{995: 100}, map[int]int{995: 40}, nil)
	if len(d.Changed) != 1 || d.Changed[0].Delta != -60 {
		t.Fatalf("changed = %+v", d.Changed)
	}
	if d.QuantityLost != 60 || d.QuantityGained != 0 {
		t.Fatalf("lost=%d gained=%d", d.QuantityLost, d.QuantityGained)
	}
	if d.ItemsAdded != 0 || d.ItemsRemoved != 0 {
		t.Fatalf("quantity change must not count as add/remove")
	}
}

func TestInventory_RemovedAndZeroTreatedAbsent(t *testing.T) {
	d := Inventory(map[int]int{385: 5, 379: 0}, map[int]int{385: 0}, nil)
	if d.ItemsRemoved != 1 || len(d.Removed) != 1 || d.Removed[0].ID != 385 {
		t.Fatalf("removed = %+v", d.Removed)
	}
	if d.QuantityLost != 5 {
		t.Fatalf("lost = %d, want 5", d.QuantityLost)
	}
}

func TestInventory_Valuation(t *testing.T) {
	prices := staticPrices{4151: 1_500_000, 995: 1}
	d := Inventory(map[int]int{995: 100}, map[int]int{995: 100, 4151: 1}, prices)
	if d.ValueGained == nil || *d.ValueGained != 1_500_000 {
		t.Fatalf("value gained = %v", d.ValueGained)
	}
	if d.ValueLost == nil || *d.ValueLost != 0 {
		t.Fatalf("value lost = %v", d.ValueLost)
	}
}

func TestInventory_PricingFailureOmitsValues(t *testing.T) {
	d := Inventory(map[int]int{}, map[int]int{4151: 1}, panicPrices{})
	if d.ItemsAdded != 1 {
		t.Fatalf("pricing failure aborted the diff: %+v", d)
	}
	if d.ValueGained != nil || d.ValueLost != nil {
		t.Fatalf("value fields should be omitted when the oracle fails")
	}
}

func TestEquipment_NoChanges(t *testing.T) {
	eq := map[hostapi.EquipmentSlot]int{hostapi.SlotWeapon: 4151, hostapi.SlotHead: 1163}
	d := Equipment(eq, map[hostapi.EquipmentSlot]int{hostapi.SlotWeapon: 4151, hostapi.SlotHead: 1163})
	if d.ChangeCount != 0 {
		t.Fatalf("change count = %d, want 0", d.ChangeCount)
	}
	if d.WeaponChanged || d.ArmorChanged || d.AccessoryChanged {
		t.Fatalf("no bucket flag should be set: %+v", d)
	}
}

func TestEquipment_BucketClassification(t *testing.T) {
	prev := map[hostapi.EquipmentSlot]int{
		hostapi.SlotWeapon: 4151,
		hostapi.SlotBody:   1127,
		hostapi.SlotRing:   2550,
	}
	cur := map[hostapi.EquipmentSlot]int{
		hostapi.SlotWeapon: 11802,
		hostapi.SlotBody:   1127,
		hostapi.SlotRing:   0,
	}
	d := Equipment(prev, cur)
	if d.ChangeCount != 2 {
		t.Fatalf("change count = %d, want 2", d.ChangeCount)
	}
	if !d.WeaponChanged || !d.AccessoryChanged || d.ArmorChanged {
		t.Fatalf("bucket flags wrong: %+v", d)
	}
}

func TestMovement_Pythagorean(t *testing.T) {
	prev := hostapi.Point{X: 100, Y: 100, Plane: 0}
	cur := hostapi.Point{X: 103, Y: 104, Plane: 0}
	d := Movement(prev, cur, true, 600*time.Millisecond)
	if d.Distance != 5.0 {
		t.Fatalf("distance = %v, want 5.0", d.Distance)
	}
	if math.Abs(d.Speed-8.333333) > 0.001 {
		t.Fatalf("speed = %v, want ~8.333", d.Speed)
	}
	if d.Teleport {
		t.Fatalf("same-plane move flagged as teleport")
	}
}

func TestMovement_PlaneChangeIsTeleport(t *testing.T) {
	prev := hostapi.Point{X: 100, Y: 100, Plane: 0}
	cur := hostapi.Point{X: 100, Y: 100, Plane: 1}
	d := Movement(prev, cur, true, 600*time.Millisecond)
	if d.Distance != 0 || d.Speed != 0 {
		t.Fatalf("teleport must report zero distance/speed: %+v", d)
	}
	if !d.Teleport {
		t.Fatalf("teleport flag not set")
	}
}

func TestMovement_FirstSample(t *testing.T) {
	d := Movement(hostapi.Point{}, hostapi.Point{X: 3200, Y: 3200}, false, 600*time.Millisecond)
	if d.Distance != 0 || d.Speed != 0 || d.Teleport {
		t.Fatalf("first sample must be all zeros: %+v", d)
	}
}
