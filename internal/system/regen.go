package system

import (
	"time"

	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/scripting"
	"github.com/l1jgo/simcore/internal/world"
)

// RegenCalculator turns the configured base amounts into the amounts restored
// per regen tick. *scripting.Engine answers through Lua calc_regen.
type RegenCalculator interface {
	CalcRegen(ctx scripting.RegenContext) scripting.RegenResult
}

// RegenSystem restores the living player's HP/MP on a fixed cadence, never
// above the derived maxima. Phase 3 (PostUpdate).
//
// Base amounts are per second; a cadence other than 1s scales them.
type RegenSystem struct {
	world    *world.State
	calc     RegenCalculator
	interval time.Duration
	hpPerSec int
	mpPerSec int
	acc      time.Duration
}

func NewRegenSystem(ws *world.State, calc RegenCalculator, interval time.Duration, hpPerSec, mpPerSec int) *RegenSystem {
	if interval <= 0 {
		interval = time.Second
	}
	return &RegenSystem{
		world:    ws,
		calc:     calc,
		interval: interval,
		hpPerSec: hpPerSec,
		mpPerSec: mpPerSec,
	}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(dt time.Duration) {
	s.acc += dt
	for s.acc >= s.interval {
		s.acc -= s.interval
		s.tick()
	}
}

func (s *RegenSystem) tick() {
	p := s.world.Player
	if p == nil || !p.Alive() {
		return
	}
	if p.HP() >= p.MaxHP() && p.MP() >= p.MaxMP() {
		return
	}

	scale := s.interval.Seconds()
	attrs := p.Attributes()
	ctx := scripting.RegenContext{
		Level:        p.Level(),
		Constitution: attrs.Constitution,
		Intellect:    attrs.Intellect,
		BaseHP:       int(float64(s.hpPerSec) * scale),
		BaseMP:       int(float64(s.mpPerSec) * scale),
	}
	res := scripting.RegenResult{HP: ctx.BaseHP, MP: ctx.BaseMP}
	if s.calc != nil {
		res = s.calc.CalcRegen(ctx)
	}
	if res.HP < 0 {
		res.HP = 0
	}
	if res.MP < 0 {
		res.MP = 0
	}
	p.Restore(res.HP, res.MP)
}
