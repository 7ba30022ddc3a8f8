package stats

// Vitals are the current health and mana of a character, bounded by its derived maxima.
type Vitals struct {
	HP int
	MP int

	ready bool
}

// Sync brings the currents in line with new maxima. The first call fills zero
// currents to max; afterwards currents are only ever clamped down.
func (v *Vitals) Sync(maxHP, maxMP int) {
	if !v.ready {
		if v.HP == 0 {
			v.HP = maxHP
		}
		if v.MP == 0 {
			v.MP = maxMP
		}
		v.ready = true
	}
	v.HP = clamp(v.HP, 0, maxHP)
	v.MP = clamp(v.MP, 0, maxMP)
}

// Replenish sets both currents to max.
func (v *Vitals) Replenish(maxHP, maxMP int) {
	v.HP, v.MP = maxHP, maxMP
	v.ready = true
}

// Damage subtracts n from HP without going below zero and returns the amount removed.
func (v *Vitals) Damage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > v.HP {
		n = v.HP
	}
	v.HP -= n
	return n
}

// Restore adds hp/mp without exceeding the maxima.
func (v *Vitals) Restore(hp, mp, maxHP, maxMP int) {
	if hp > 0 {
		v.HP = clamp(v.HP+hp, 0, maxHP)
	}
	if mp > 0 {
		v.MP = clamp(v.MP+mp, 0, maxMP)
	}
}

// SpendMana deducts cost when affordable.
func (v *Vitals) SpendMana(cost int) bool {
	if cost > v.MP {
		return false
	}
	if cost > 0 {
		v.MP -= cost
	}
	return true
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
