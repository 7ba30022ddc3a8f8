package stats

import "sort"

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotShield Slot = "shield"
	SlotHelm   Slot = "helm"
	SlotArmor  Slot = "armor"
	SlotGloves Slot = "gloves"
	SlotBoots  Slot = "boots"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
)

// ValidSlot reports whether s is a known slot.
func ValidSlot(s Slot) bool {
	switch s {
	case SlotWeapon, SlotShield, SlotHelm, SlotArmor, SlotGloves, SlotBoots, SlotRing, SlotAmulet:
		return true
	}
	return false
}

// Item is an equippable item with flat bonuses.
type Item struct {
	Name string
	Slot Slot

	Health       int
	Mana         int
	MagicAttack  int
	MeleeAttack  int
	MagicDefense int
	MeleeDefense int
	MagicEvasion int
	MeleeEvasion int
	Speed        float64
}

// ItemLookup resolves item names to their bonuses.
type ItemLookup interface {
	Item(name string) (Item, bool)
}

// Equipment maps slot → equipped item name. The zero value is usable.
type Equipment struct {
	slots map[Slot]string
}

// Equip puts name into slot, replacing whatever was there.
func (e *Equipment) Equip(slot Slot, name string) {
	if e.slots == nil {
		e.slots = make(map[Slot]string, 8)
	}
	e.slots[slot] = name
}

// Unequip empties slot.
func (e *Equipment) Unequip(slot Slot) {
	delete(e.slots, slot)
}

// In returns the item name in slot, or "" when empty.
func (e *Equipment) In(slot Slot) string {
	return e.slots[slot]
}

// Len returns the number of occupied slots.
func (e *Equipment) Len() int { return len(e.slots) }

// Each calls fn for every occupied slot in slot-name order.
func (e *Equipment) Each(fn func(slot Slot, name string)) {
	keys := make([]Slot, 0, len(e.slots))
	for s := range e.slots {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, s := range keys {
		fn(s, e.slots[s])
	}
}
