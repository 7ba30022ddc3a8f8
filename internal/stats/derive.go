package stats

import "math"

// Combat holds the six combat stats.
type Combat struct {
	MagicAttack  int
	MeleeAttack  int
	MagicDefense int
	MeleeDefense int
	MagicEvasion int
	MeleeEvasion int
}

// Derived stats are recomputed on demand and never stored.
type Derived struct {
	Health int
	Mana   int
	Speed  float64
	Combat
}

// Derive computes health, mana, speed and combat stats from base attributes,
// stat weights and equipped items. Items missing from the lookup contribute nothing.
func Derive(a Attributes, w Weights, eq *Equipment, items ItemLookup) Derived {
	var sum Contribution
	for _, name := range AttributeNames {
		pts, _ := a.Get(name)
		c, ok := w[name]
		if !ok || pts == 0 {
			continue
		}
		p := float64(pts)
		sum.Health += p * c.Health
		sum.Mana += p * c.Mana
		sum.MagicAttack += p * c.MagicAttack
		sum.MeleeAttack += p * c.MeleeAttack
		sum.MagicDefense += p * c.MagicDefense
		sum.MeleeDefense += p * c.MeleeDefense
		sum.MagicEvasion += p * c.MagicEvasion
		sum.MeleeEvasion += p * c.MeleeEvasion
	}

	d := Derived{
		Health: a.BaseHealth + floor(sum.Health),
		Mana:   a.BaseMana + floor(sum.Mana),
		Speed:  a.BaseSpeed,
		Combat: Combat{
			MagicAttack:  floor(sum.MagicAttack),
			MeleeAttack:  floor(sum.MeleeAttack),
			MagicDefense: floor(sum.MagicDefense),
			MeleeDefense: floor(sum.MeleeDefense),
			MagicEvasion: floor(sum.MagicEvasion),
			MeleeEvasion: floor(sum.MeleeEvasion),
		},
	}

	if eq == nil || items == nil {
		return d
	}
	eq.Each(func(_ Slot, name string) {
		it, ok := items.Item(name)
		if !ok {
			return
		}
		d.Health += it.Health
		d.Mana += it.Mana
		d.Speed += it.Speed
		d.MagicAttack += it.MagicAttack
		d.MeleeAttack += it.MeleeAttack
		d.MagicDefense += it.MagicDefense
		d.MeleeDefense += it.MeleeDefense
		d.MagicEvasion += it.MagicEvasion
		d.MeleeEvasion += it.MeleeEvasion
	})
	return d
}

func floor(f float64) int { return int(math.Floor(f)) }
