package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/stats"
)

// ErrNoUnspentPoints is returned by AllocatePoint when nothing is left to spend.
var ErrNoUnspentPoints = errors.New("no unspent attribute points")

// Player is the controlled character. Accessed only from the game loop
// goroutine, no locks.
type Player struct {
	id   ecs.EntityID
	Name string

	attrs   stats.Attributes
	weights stats.Weights
	items   stats.ItemLookup
	equip   stats.Equipment
	vitals  stats.Vitals
	pos     geom.Vec2

	unspent        int
	pointsPerLevel int

	prog     *progression.Tracker
	resolver *combat.Resolver

	bus *event.Bus
	log *zap.Logger

	// Dirty is set whenever persisted state changes; the persistence system
	// clears it after a successful save.
	Dirty bool
}

func (p *Player) ID() ecs.EntityID                  { return p.id }
func (p *Player) Position() geom.Vec2               { return p.pos }
func (p *Player) SetPosition(v geom.Vec2)           { p.pos = v }
func (p *Player) Attributes() stats.Attributes      { return p.attrs }
func (p *Player) UnspentPoints() int                { return p.unspent }
func (p *Player) Level() int                        { return p.prog.Level() }
func (p *Player) Progression() *progression.Tracker { return p.prog }
func (p *Player) Resolver() *combat.Resolver        { return p.resolver }
func (p *Player) Equipment() *stats.Equipment       { return &p.equip }

// Derived recomputes stats from the current attributes and equipment.
func (p *Player) Derived() stats.Derived {
	return stats.Derive(p.attrs, p.weights, &p.equip, p.items)
}

func (p *Player) CombatStats() stats.Combat { return p.Derived().Combat }
func (p *Player) HP() int                   { return p.vitals.HP }
func (p *Player) MP() int                   { return p.vitals.MP }
func (p *Player) Mana() int                 { return p.vitals.MP }
func (p *Player) MaxHP() int                { return p.Derived().Health }
func (p *Player) MaxMP() int                { return p.Derived().Mana }
func (p *Player) Alive() bool               { return p.vitals.HP > 0 }

// ApplyDamage lowers current health, never below zero.
func (p *Player) ApplyDamage(n int) int {
	applied := p.vitals.Damage(n)
	if applied > 0 {
		p.Dirty = true
	}
	return applied
}

func (p *Player) SpendMana(cost int) bool {
	return p.vitals.SpendMana(cost)
}

// Restore adds health and mana up to the current maxima.
func (p *Player) Restore(hp, mp int) {
	d := p.Derived()
	p.vitals.Restore(hp, mp, d.Health, d.Mana)
}

// Replenish fills health and mana.
func (p *Player) Replenish() {
	d := p.Derived()
	p.vitals.Replenish(d.Health, d.Mana)
}

// SyncVitals clamps currents after the maxima may have shrunk.
func (p *Player) SyncVitals() {
	d := p.Derived()
	p.vitals.Sync(d.Health, d.Mana)
}

// GainExperience adds experience and reports it to the presentation sink.
// Level-ups replenish vitals and grant attribute points through the tracker hook.
func (p *Player) GainExperience(amount int64) int {
	if amount <= 0 {
		return 0
	}
	gained := p.prog.Gain(amount)
	p.Dirty = true
	event.Emit(p.bus, event.ExperienceGained{Player: p.id, Amount: amount, Total: p.prog.TotalExp()})
	return gained
}

func (p *Player) onLevelUp(level int) {
	p.unspent += p.pointsPerLevel
	p.Replenish()
	p.log.Info("level up", zap.String("player", p.Name), zap.Int("level", level))
	event.Emit(p.bus, event.LevelUp{Player: p.id, Level: level})
}

// AllocatePoint spends one unspent point on a named attribute.
func (p *Player) AllocatePoint(attr string) error {
	if p.unspent <= 0 {
		return ErrNoUnspentPoints
	}
	if err := p.attrs.Add(attr, 1); err != nil {
		return fmt.Errorf("allocate point: %w", err)
	}
	p.unspent--
	p.Dirty = true
	p.SyncVitals()
	return nil
}

// Equip puts a known item into its slot. Unknown items are logged and ignored.
func (p *Player) Equip(name string) bool {
	it, ok := p.items.Item(name)
	if !ok {
		p.log.Warn("equip: unknown item", zap.String("item", name))
		event.Emit(p.bus, event.Message{Target: p.id, Text: "unknown item " + name})
		return false
	}
	p.equip.Equip(it.Slot, it.Name)
	p.Dirty = true
	p.SyncVitals()
	return true
}

// Unequip empties a slot.
func (p *Player) Unequip(slot stats.Slot) {
	if p.equip.In(slot) == "" {
		return
	}
	p.equip.Unequip(slot)
	p.Dirty = true
	p.SyncVitals()
}
