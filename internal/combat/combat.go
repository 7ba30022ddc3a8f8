// Package combat resolves skill use and mob strikes. A Resolver belongs to one
// actor and owns its casting state and cooldown table.
package combat

import (
	"time"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/stats"
)

// Damageable is anything with hit points that combat can hurt.
type Damageable interface {
	HP() int
	MaxHP() int
	Alive() bool
	// ApplyDamage removes up to n hp and returns the amount removed.
	ApplyDamage(n int) int
}

// Target is a Damageable with a position and combat stats.
type Target interface {
	Damageable
	ID() ecs.EntityID
	Position() geom.Vec2
	CombatStats() stats.Combat
}

// Caster is the actor owning a Resolver.
type Caster interface {
	ID() ecs.EntityID
	Alive() bool
	Position() geom.Vec2
	CombatStats() stats.Combat
	Mana() int
	SpendMana(cost int) bool
}

// Skill is a static skill definition.
type Skill struct {
	ID          int
	Name        string
	ManaCost    int
	Range       float64
	MagicAttack int
	MeleeAttack int
	CastingTime time.Duration
	Cooldown    float64 // seconds
}

// Kind is magic when the skill's magic power exceeds its melee power.
func (s Skill) Kind() stats.AttackKind {
	if s.MagicAttack > s.MeleeAttack {
		return stats.Magic
	}
	return stats.Melee
}

// Instant reports whether the skill resolves without a cast window.
func (s Skill) Instant() bool { return s.CastingTime <= 0 }

// Reason says why a skill use did not go through.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoTarget
	ReasonTargetDead
	ReasonOutOfRange
	ReasonNoMana
	ReasonCooldown
	ReasonCasting
)

var reasonText = [...]string{
	ReasonNone:       "",
	ReasonNoTarget:   "no target",
	ReasonTargetDead: "target is dead",
	ReasonOutOfRange: "target out of range",
	ReasonNoMana:     "not enough mana",
	ReasonCooldown:   "skill on cooldown",
	ReasonCasting:    "already casting",
}

func (r Reason) String() string {
	if int(r) < len(reasonText) {
		return reasonText[r]
	}
	return "unknown"
}

// Result is the outcome of UseSkill. Failed results never change state.
type Result struct {
	Success bool
	Reason  Reason
	// Casting is set when the skill entered a cast window instead of resolving.
	Casting bool
	Damage  int
}

func fail(r Reason) Result { return Result{Reason: r} }

// Cooldowns maps skill id to remaining seconds.
type Cooldowns map[int]float64

// Remaining returns the seconds left on a skill, 0 when ready.
func (c Cooldowns) Remaining(skillID int) float64 { return c[skillID] }

func (c Cooldowns) decay(sec float64) {
	for id, left := range c {
		left -= sec
		if left <= 1e-9 {
			delete(c, id)
			continue
		}
		c[id] = left
	}
}
