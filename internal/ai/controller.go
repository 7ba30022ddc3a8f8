package ai

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/stats"
)

// Physics is the movement collaborator. Agents only hand it intent.
type Physics interface {
	IsBlocked(p geom.Vec2) bool
	SetVelocity(id ecs.EntityID, v geom.Vec2)
	Place(id ecs.EntityID, p geom.Vec2)
}

// Timing holds the AI constants.
type Timing struct {
	IdleMin         time.Duration
	IdleMax         time.Duration
	WanderMin       time.Duration
	WanderMax       time.Duration
	VisionDistance  float64
	ChaseSpeedMult  float64
	StuckInterval   time.Duration
	StuckThreshold  float64
	UnstickDuration time.Duration
	HideDelay       time.Duration
	RespawnDelay    time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		IdleMin:         2000 * time.Millisecond,
		IdleMax:         5000 * time.Millisecond,
		WanderMin:       3000 * time.Millisecond,
		WanderMax:       7000 * time.Millisecond,
		VisionDistance:  50,
		ChaseSpeedMult:  2.0,
		StuckInterval:   1000 * time.Millisecond,
		StuckThreshold:  5,
		UnstickDuration: 500 * time.Millisecond,
		HideDelay:       1000 * time.Millisecond,
		RespawnDelay:    5000 * time.Millisecond,
	}
}

// Env is shared by every controller of a registry.
type Env struct {
	Clock     sched.Clock
	Rand      stats.Rand
	Physics   Physics
	Templates TemplateSource
	Bus       *event.Bus
	Log       *zap.Logger
	Timing    Timing
}

// Controller is the state machine of a single agent.
type Controller struct {
	a   *Agent
	env *Env

	// onDeath is set by the registry.
	onDeath func(*Agent, *Template)
}

func newController(a *Agent, env *Env) *Controller {
	c := &Controller{a: a, env: env}
	a.ctl = c
	return c
}

// Update advances the agent one tick against the player. A nil or dead
// player is out of aggro.
func (c *Controller) Update(player combat.Target) {
	a := c.a
	if a.dead {
		return
	}
	tpl, ok := c.env.Templates.Template(a.templateID)
	if !ok {
		c.env.Log.Warn("agent template missing",
			zap.Stringer("agent", a.id),
			zap.Int("template", a.templateID))
		return
	}

	inAggro := false
	dist := math.Inf(1)
	if player != nil && player.Alive() {
		dist = geom.Distance(a.pos, player.Position())
		inAggro = dist <= tpl.AggroRange
	}

	switch a.state {
	case Idle, Wandering:
		if a.faction == Enemy && inAggro {
			c.chase(tpl, player)
			return
		}
		if a.state == Wandering && c.blockedAhead() {
			c.decide(tpl)
		}
	case Chasing:
		if !inAggro {
			c.idle(tpl)
			return
		}
		if dist <= tpl.AttackRange {
			c.attack(tpl, player)
			return
		}
		c.steer(player.Position(), tpl.Speed*c.env.Timing.ChaseSpeedMult)
	case Attacking:
		if !inAggro {
			c.idle(tpl)
			return
		}
		if dist > tpl.AttackRange {
			c.chase(tpl, player)
			return
		}
		c.tryStrike(tpl, player)
	case Unsticking:
		// the unstick timer hands control back to chasing
	default:
		c.env.Log.Warn("agent in unexpected state",
			zap.Stringer("agent", a.id),
			zap.Stringer("state", a.state))
	}
}

func (c *Controller) setState(s State) {
	a := c.a
	if a.state == s {
		return
	}
	from := a.state
	a.state = s
	c.env.Log.Debug("agent state",
		zap.Stringer("agent", a.id),
		zap.Stringer("from", from),
		zap.Stringer("to", s))
	event.Emit(c.env.Bus, event.StateChanged{Agent: a.id, From: from.String(), To: s.String()})
}

func (c *Controller) setVelocity(v geom.Vec2) {
	c.env.Physics.SetVelocity(c.a.id, v)
}

func (c *Controller) randDuration(lo, hi time.Duration) time.Duration {
	span := int((hi - lo) / time.Millisecond)
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(c.env.Rand.IntN(span+1))*time.Millisecond
}

func (c *Controller) stopTimers() {
	a := c.a
	a.decision.Cancel()
	a.stuck.Cancel()
	a.unstick.Cancel()
	a.lifecycle.Cancel()
	a.decision, a.stuck, a.unstick, a.lifecycle = nil, nil, nil, nil
}

// decide flips a coin between wandering now and idling first.
func (c *Controller) decide(tpl *Template) {
	if c.env.Rand.IntN(2) == 0 {
		c.wander(tpl)
		return
	}
	c.idle(tpl)
}

func (c *Controller) idle(tpl *Template) {
	a := c.a
	a.stuck.Cancel()
	a.unstick.Cancel()
	a.stuck, a.unstick = nil, nil
	c.setState(Idle)
	c.setVelocity(geom.Vec2{})

	a.decision.Cancel()
	a.decision = c.env.Clock.After(c.randDuration(c.env.Timing.IdleMin, c.env.Timing.IdleMax), func() {
		c.wander(tpl)
	})
}

func (c *Controller) wander(tpl *Template) {
	a := c.a
	c.setState(Wandering)
	a.wanderDir = geom.AxisDirections[c.env.Rand.IntN(len(geom.AxisDirections))]
	a.heading = a.wanderDir
	c.setVelocity(a.wanderDir.Scale(tpl.Speed))

	a.decision.Cancel()
	a.decision = c.env.Clock.After(c.randDuration(c.env.Timing.WanderMin, c.env.Timing.WanderMax), func() {
		c.decide(tpl)
	})
}

func (c *Controller) blockedAhead() bool {
	a := c.a
	ahead := a.pos.Add(a.wanderDir.Scale(c.env.Timing.VisionDistance))
	return c.env.Physics.IsBlocked(ahead)
}

func (c *Controller) chase(tpl *Template, player combat.Target) {
	a := c.a
	a.decision.Cancel()
	a.decision = nil
	c.setState(Chasing)
	c.restartStuckCheck()
	c.steer(player.Position(), tpl.Speed*c.env.Timing.ChaseSpeedMult)
}

func (c *Controller) steer(to geom.Vec2, speed float64) {
	a := c.a
	dir := to.Sub(a.pos).Normalize()
	if !dir.IsZero() {
		a.heading = dir
	}
	c.setVelocity(dir.Scale(speed))
}

func (c *Controller) restartStuckCheck() {
	a := c.a
	a.lastCheckPos = a.pos
	a.stuck.Cancel()
	a.stuck = c.env.Clock.Every(c.env.Timing.StuckInterval, func() {
		c.checkStuck()
	})
}

func (c *Controller) checkStuck() {
	a := c.a
	if a.state != Chasing {
		return
	}
	if geom.Distance(a.pos, a.lastCheckPos) < c.env.Timing.StuckThreshold {
		c.unstickMove()
		return
	}
	a.lastCheckPos = a.pos
}

func (c *Controller) unstickMove() {
	a := c.a
	tpl, ok := c.env.Templates.Template(a.templateID)
	if !ok {
		return
	}
	a.stuck.Cancel()
	a.stuck = nil
	c.setState(Unsticking)

	heading := a.heading
	if heading.IsZero() {
		heading = geom.AxisDirections[c.env.Rand.IntN(len(geom.AxisDirections))]
	}
	side := heading.PerpLeft()
	if c.env.Rand.IntN(2) == 1 {
		side = heading.PerpRight()
	}
	c.setVelocity(side.Scale(tpl.Speed))

	a.unstick.Cancel()
	a.unstick = c.env.Clock.After(c.env.Timing.UnstickDuration, func() {
		a.unstick = nil
		if a.dead {
			return
		}
		c.setState(Chasing)
		c.restartStuckCheck()
	})
}

func (c *Controller) attack(tpl *Template, player combat.Target) {
	a := c.a
	a.stuck.Cancel()
	a.stuck = nil
	c.setState(Attacking)
	c.setVelocity(geom.Vec2{})
	c.tryStrike(tpl, player)
}

func (c *Controller) tryStrike(tpl *Template, player combat.Target) {
	a := c.a
	now := c.env.Clock.Now()
	if a.attacked && now-a.lastAttackAt < tpl.AttackCooldown {
		return
	}
	a.attacked = true
	a.lastAttackAt = now

	res := combat.Strike(c.env.Rand, a.combat, player)
	if res.Evaded {
		c.env.Log.Debug("mob attack missed",
			zap.Stringer("agent", a.id),
			zap.Stringer("kind", res.Kind))
		event.Emit(c.env.Bus, event.AttackEvaded{Attacker: a.id, Defender: player.ID(), Kind: res.Kind})
		return
	}
	event.Emit(c.env.Bus, event.DamageDealt{
		Source:   a.id,
		Target:   player.ID(),
		Amount:   res.Damage,
		Kind:     res.Kind,
		TargetHP: player.HP(),
	})
	if !player.Alive() {
		event.Emit(c.env.Bus, event.PlayerDied{Player: player.ID(), KilledBy: a.id})
		c.idle(tpl)
	}
}

func (c *Controller) die() {
	a := c.a
	c.stopTimers()
	a.dead = true
	c.setState(Dead)
	c.setVelocity(geom.Vec2{})

	tpl, ok := c.env.Templates.Template(a.templateID)
	if ok {
		event.Emit(c.env.Bus, event.AgentDied{Agent: a.id, Template: tpl.ID, Level: tpl.Level})
		if c.onDeath != nil {
			c.onDeath(a, tpl)
		}
	} else {
		c.env.Log.Warn("death reward skipped, template missing",
			zap.Stringer("agent", a.id),
			zap.Int("template", a.templateID))
	}

	a.lifecycle = c.env.Clock.After(c.env.Timing.HideDelay, func() {
		a.hidden = true
		event.Emit(c.env.Bus, event.AgentHidden{Agent: a.id})
		a.lifecycle = c.env.Clock.After(c.env.Timing.RespawnDelay, c.respawn)
	})
}

func (c *Controller) respawn() {
	a := c.a
	a.lifecycle = nil
	tpl, ok := c.env.Templates.Template(a.templateID)
	if !ok {
		c.env.Log.Warn("respawn skipped, template missing",
			zap.Stringer("agent", a.id),
			zap.Int("template", a.templateID))
		a.lifecycle = c.env.Clock.After(c.env.Timing.RespawnDelay, c.respawn)
		return
	}
	from := a.state
	a.reset(tpl)
	c.env.Physics.Place(a.id, a.spawn)
	event.Emit(c.env.Bus, event.StateChanged{Agent: a.id, From: from.String(), To: Idle.String()})
	event.Emit(c.env.Bus, event.AgentRespawned{Agent: a.id, Pos: a.spawn})
	c.idle(tpl)
}
