package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/world"
)

// Mover sets a body's velocity; *physics.World implements it.
type Mover interface {
	SetVelocity(id ecs.EntityID, v geom.Vec2)
}

// AutopilotConfig drives the headless player.
type AutopilotConfig struct {
	Skills      []combat.Skill // tried in order; the first usable one in range fires
	ReviveDelay time.Duration  // how long the player lies dead before replenishing
	AllocateTo  string         // attribute that receives unspent points; empty keeps them
}

// AutopilotSystem stands in for player input: it tab-targets the nearest
// mob, walks into skill range and fires skills. Phase 0 (Input).
type AutopilotSystem struct {
	world  *world.State
	mover  Mover
	clock  sched.Clock
	bus    *event.Bus
	log    *zap.Logger
	cfg    AutopilotConfig
	target *ai.Agent
	revive *sched.Handle
	reach  float64
}

func NewAutopilotSystem(ws *world.State, mover Mover, clock sched.Clock, bus *event.Bus, log *zap.Logger, cfg AutopilotConfig) *AutopilotSystem {
	if cfg.ReviveDelay <= 0 {
		cfg.ReviveDelay = 5 * time.Second
	}
	s := &AutopilotSystem{world: ws, mover: mover, clock: clock, bus: bus, log: log, cfg: cfg}
	for _, sk := range cfg.Skills {
		s.reach = max(s.reach, sk.Range)
	}
	return s
}

func (s *AutopilotSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Target returns the current selection, nil when none.
func (s *AutopilotSystem) Target() *ai.Agent { return s.target }

func (s *AutopilotSystem) Update(_ time.Duration) {
	p := s.world.Player
	if p == nil {
		return
	}
	if !p.Alive() {
		p.Resolver().CancelCast()
		s.halt(p)
		s.target = nil
		if !s.revive.Active() {
			s.revive = s.clock.After(s.cfg.ReviveDelay, s.reviveNow)
		}
		return
	}

	s.spendPoints(p)

	if p.Resolver().Casting() {
		s.halt(p)
		return
	}

	if s.target == nil || !s.target.Alive() {
		s.target = s.world.CycleTarget()
		if s.target == nil {
			s.halt(p)
			return
		}
	}

	dist := geom.Distance(p.Position(), s.target.Position())
	for _, sk := range s.cfg.Skills {
		if dist > sk.Range || !p.Resolver().CanUseSkill(sk) {
			continue
		}
		s.halt(p)
		p.Resolver().UseSkill(sk, s.target)
		return
	}

	if dist > s.reach {
		s.mover.SetVelocity(p.ID(), geom.Toward(p.Position(), s.target.Position(), p.Derived().Speed))
		return
	}
	// In range but nothing ready.
	s.halt(p)
}

func (s *AutopilotSystem) halt(p *world.Player) {
	s.mover.SetVelocity(p.ID(), geom.Vec2{})
}

func (s *AutopilotSystem) spendPoints(p *world.Player) {
	if s.cfg.AllocateTo == "" {
		return
	}
	for p.UnspentPoints() > 0 {
		if err := p.AllocatePoint(s.cfg.AllocateTo); err != nil {
			s.log.Warn("allocate point failed", zap.String("attr", s.cfg.AllocateTo), zap.Error(err))
			return
		}
	}
}

func (s *AutopilotSystem) reviveNow() {
	p := s.world.Player
	if p == nil || p.Alive() {
		return
	}
	p.Replenish()
	p.Dirty = true
	s.log.Info("player revived", zap.String("player", p.Name))
	event.Emit(s.bus, event.Message{Target: p.ID(), Text: "revived"})
}
