package stats

// Rand is the random source used by damage variance and evasion rolls.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// AttackKind selects which attack/defense/evasion pair a hit uses.
type AttackKind int

const (
	Melee AttackKind = iota
	Magic
)

func (k AttackKind) String() string {
	if k == Magic {
		return "magic"
	}
	return "melee"
}

// Attack returns the attack stat matching kind.
func (c Combat) Attack(kind AttackKind) int {
	if kind == Magic {
		return c.MagicAttack
	}
	return c.MeleeAttack
}

// Defense returns the defense stat matching kind.
func (c Combat) Defense(kind AttackKind) int {
	if kind == Magic {
		return c.MagicDefense
	}
	return c.MeleeDefense
}

// Evasion returns the evasion stat matching kind.
func (c Combat) Evasion(kind AttackKind) int {
	if kind == Magic {
		return c.MagicEvasion
	}
	return c.MeleeEvasion
}

// PreferredKind is melee when melee attack is at least magic attack.
func (c Combat) PreferredKind() AttackKind {
	if c.MeleeAttack >= c.MagicAttack {
		return Melee
	}
	return Magic
}

const (
	damageVariance = 2
	minDamage      = 1
)

// ComputeDamage is attack minus matching defense plus a uniform integer variance
// in [-2, +2], never less than 1.
func ComputeDamage(rng Rand, attacker, defender Combat, kind AttackKind) int {
	raw := attacker.Attack(kind) - defender.Defense(kind)
	raw += rng.IntN(2*damageVariance+1) - damageVariance
	if raw < minDamage {
		return minDamage
	}
	return raw
}

// RollEvasion treats evasion as a percentage chance; values ≥ 100 always evade.
func RollEvasion(rng Rand, evasion float64) bool {
	return rng.Float64()*100 < evasion
}
