// Package diff computes per-tick deltas between the previous and current
// collected state. Every function here is pure: no host calls, no clock
// reads, no writes to shared state. The caller owns committing the new
// state into its previous-state cache after a successful diff.
package diff

import (
	"math"
	"time"

	"runewatch.ai/internal/hostapi"
)

// PriceOracle values items best-effort. A miss omits value fields and is
// never an error.
type PriceOracle interface {
	PriceOf(itemID int) (int64, bool)
}

type ItemChange struct {
	ID       int `json:"id"`
	Delta    int `json:"delta"` // signed quantity change
	Quantity int `json:"quantity"`
}

type InventoryDelta struct {
	Added   []ItemChange `json:"added,omitempty"`
	Removed []ItemChange `json:"removed,omitempty"`
	Changed []ItemChange `json:"changed,omitempty"`

	ItemsAdded     int   `json:"items_added"`
	ItemsRemoved   int   `json:"items_removed"`
	QuantityGained int64 `json:"quantity_gained"`
	QuantityLost   int64 `json:"quantity_lost"`

	// Value fields are present only when every touched item priced.
	ValueGained *int64 `json:"value_gained,omitempty"`
	ValueLost   *int64 `json:"value_lost,omitempty"`
}

// Inventory diffs id->quantity maps. Ids appearing (or leaving zero) count
// as added; ids dropping to absent/zero count as removed; quantity moves
// in both directions are signed changes.
func Inventory(previous, current map[int]int, prices PriceOracle) InventoryDelta {
	var d InventoryDelta
	var gainedValue, lostValue int64
	pricedAll := true

	price := func(id int) (int64, bool) {
		if prices == nil {
			return 0, false
		}
		return safePrice(prices, id)
	}

	for id, qty := range current {
		if qty <= 0 {
			continue
		}
		prev := previous[id]
		switch {
		case prev <= 0:
			d.Added = append(d.Added, ItemChange{ID: id, Delta: qty, Quantity: qty})
			d.ItemsAdded++
			d.QuantityGained += int64(qty)
			if p, ok := price(id); ok {
				gainedValue += p * int64(qty)
			} else {
				pricedAll = false
			}
		case prev != qty:
			d.Changed = append(d.Changed, ItemChange{ID: id, Delta: qty - prev, Quantity: qty})
			if qty > prev {
				d.QuantityGained += int64(qty - prev)
				if p, ok := price(id); ok {
					gainedValue += p * int64(qty-prev)
				} else {
					pricedAll = false
				}
			} else {
				d.QuantityLost += int64(prev - qty)
				if p, ok := price(id); ok {
					lostValue += p * int64(prev-qty)
				} else {
					pricedAll = false
				}
			}
		}
	}
	for id, prev := range previous {
		if prev <= 0 {
			continue
		}
		if current[id] > 0 {
			continue
		}
		d.Removed = append(d.Removed, ItemChange{ID: id, Delta: -prev, Quantity: 0})
		d.ItemsRemoved++
		d.QuantityLost += int64(prev)
		if p, ok := price(id); ok {
			lostValue += p * int64(prev)
		} else {
			pricedAll = false
		}
	}

	if prices != nil && pricedAll {
		d.ValueGained = &gainedValue
		d.ValueLost = &lostValue
	}
	return d
}

// safePrice guards against a misbehaving oracle; pricing failures must
// never abort the diff.
func safePrice(prices PriceOracle, id int) (p int64, ok bool) {
	defer func() {
		if recover() != nil {
			p, ok = 0, false
		}
	}()
	return prices.PriceOf(id)
}

// SlotBucket classifies an equipment slot change. Static by slot identity.
type SlotBucket string

const (
	BucketWeapon    SlotBucket = "weapon"
	BucketArmor     SlotBucket = "armor"
	BucketAccessory SlotBucket = "accessory"
)

var slotBuckets = map[hostapi.EquipmentSlot]SlotBucket{
	hostapi.SlotWeapon: BucketWeapon,
	hostapi.SlotShield: BucketWeapon,
	hostapi.SlotHead:   BucketArmor,
	hostapi.SlotBody:   BucketArmor,
	hostapi.SlotLegs:   BucketArmor,
	hostapi.SlotGloves: BucketArmor,
	hostapi.SlotBoots:  BucketArmor,
	hostapi.SlotCape:   BucketAccessory,
	hostapi.SlotAmulet: BucketAccessory,
	hostapi.SlotRing:   BucketAccessory,
	hostapi.SlotAmmo:   BucketAccessory,
}

type SlotChange struct {
	Slot   hostapi.EquipmentSlot `json:"slot"`
	FromID int                   `json:"from_id"`
	ToID   int                   `json:"to_id"`
	Bucket SlotBucket            `json:"bucket"`
}

type EquipmentDelta struct {
	Changes          []SlotChange `json:"changes,omitempty"`
	ChangeCount      int          `json:"change_count"`
	WeaponChanged    bool         `json:"weapon_changed"`
	ArmorChanged     bool         `json:"armor_changed"`
	AccessoryChanged bool         `json:"accessory_changed"`
}

// Equipment compares slot->item id maps over the fixed slot list. An
// absent slot reads as id 0 (empty).
func Equipment(previous, current map[hostapi.EquipmentSlot]int) EquipmentDelta {
	var d EquipmentDelta
	for _, slot := range hostapi.EquipmentSlots {
		from, to := previous[slot], current[slot]
		if from == to {
			continue
		}
		bucket := slotBuckets[slot]
		d.Changes = append(d.Changes, SlotChange{Slot: slot, FromID: from, ToID: to, Bucket: bucket})
		d.ChangeCount++
		switch bucket {
		case BucketWeapon:
			d.WeaponChanged = true
		case BucketArmor:
			d.ArmorChanged = true
		case BucketAccessory:
			d.AccessoryChanged = true
		}
	}
	return d
}

type MovementDelta struct {
	Distance float64 `json:"distance"`
	Speed    float64 `json:"speed"` // tiles per second
	Teleport bool    `json:"teleport"`
}

// Movement reports Euclidean tile distance and speed against wall-clock
// elapsed time. A plane mismatch is a teleport: distance and speed zero
// rather than a meaningless cross-plane number. hasPrevious=false (first
// sample) also yields zeros.
func Movement(previous, current hostapi.Point, hasPrevious bool, elapsed time.Duration) MovementDelta {
	if !hasPrevious {
		return MovementDelta{}
	}
	if previous.Plane != current.Plane {
		return MovementDelta{Teleport: true}
	}
	dx := float64(current.X - previous.X)
	dy := float64(current.Y - previous.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	var speed float64
	if elapsed > 0 {
		speed = dist / elapsed.Seconds()
	}
	return MovementDelta{Distance: dist, Speed: speed}
}
