package combat

import "github.com/l1jgo/simcore/internal/stats"

// StrikeResult is the outcome of one mob attack.
type StrikeResult struct {
	Kind   stats.AttackKind
	Evaded bool
	Damage int
}

// Strike resolves a mob attack against defender. The attack kind follows the
// attacker's stronger stat; evasion is rolled before the damage formula and an
// evaded strike deals nothing.
func Strike(rng stats.Rand, attacker stats.Combat, defender Target) StrikeResult {
	kind := attacker.PreferredKind()
	def := defender.CombatStats()
	if stats.RollEvasion(rng, float64(def.Evasion(kind))) {
		return StrikeResult{Kind: kind, Evaded: true}
	}
	dmg := stats.ComputeDamage(rng, attacker, def, kind)
	return StrikeResult{Kind: kind, Damage: defender.ApplyDamage(dmg)}
}
