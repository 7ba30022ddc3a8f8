package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/core/event"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/stats"
)

// Options are the resolver's timing constants.
type Options struct {
	RangeExtender float64
	CastPoll      time.Duration
	CooldownTick  time.Duration
}

func DefaultOptions() Options {
	return Options{RangeExtender: 1.1, CastPoll: 100 * time.Millisecond, CooldownTick: 100 * time.Millisecond}
}

// Resolver runs skill use for one actor.
type Resolver struct {
	owner Caster
	clock sched.Clock
	rng   stats.Rand
	bus   *event.Bus
	log   *zap.Logger
	opts  Options

	casting    bool
	castSkill  Skill
	castTarget Target
	castStart  time.Duration
	poll       *sched.Handle

	cooldowns Cooldowns
	decay     *sched.Handle
}

func NewResolver(owner Caster, clock sched.Clock, rng stats.Rand, bus *event.Bus, log *zap.Logger, opts Options) *Resolver {
	if opts.RangeExtender <= 0 {
		opts.RangeExtender = 1
	}
	return &Resolver{
		owner:     owner,
		clock:     clock,
		rng:       rng,
		bus:       bus,
		log:       log,
		opts:      opts,
		cooldowns: make(Cooldowns),
	}
}

func (r *Resolver) Casting() bool { return r.casting }

// CastingSkill returns the skill being cast, if any.
func (r *Resolver) CastingSkill() (Skill, bool) { return r.castSkill, r.casting }

func (r *Resolver) Cooldowns() Cooldowns { return r.cooldowns }

// CanUseSkill is false while casting, while the skill cools down or when mana
// is short.
func (r *Resolver) CanUseSkill(sk Skill) bool {
	return r.check(sk) == ReasonNone
}

func (r *Resolver) check(sk Skill) Reason {
	switch {
	case r.owner.Mana() < sk.ManaCost:
		return ReasonNoMana
	case r.cooldowns[sk.ID] > 0:
		return ReasonCooldown
	case r.casting:
		return ReasonCasting
	}
	return ReasonNone
}

// UseSkill validates and starts a skill against target. Instant skills
// resolve before returning; others enter a cast window polled on the clock.
func (r *Resolver) UseSkill(sk Skill, target Target) Result {
	res := r.useSkill(sk, target)
	if !res.Success {
		r.log.Debug("skill suppressed",
			zap.String("skill", sk.Name),
			zap.Stringer("reason", res.Reason))
		event.Emit(r.bus, event.Message{Target: r.owner.ID(), Text: res.Reason.String()})
	}
	return res
}

func (r *Resolver) useSkill(sk Skill, target Target) Result {
	if target == nil {
		return fail(ReasonNoTarget)
	}
	if !target.Alive() {
		return fail(ReasonTargetDead)
	}
	if geom.Distance(r.owner.Position(), target.Position()) > sk.Range {
		return fail(ReasonOutOfRange)
	}
	if reason := r.check(sk); reason != ReasonNone {
		return fail(reason)
	}

	if sk.Instant() {
		dmg := r.resolve(sk, target)
		return Result{Success: true, Damage: dmg}
	}

	r.casting = true
	r.castSkill = sk
	r.castTarget = target
	r.castStart = r.clock.Now()
	r.poll.Cancel()
	r.poll = r.clock.Every(r.opts.CastPoll, r.pollCast)

	event.Emit(r.bus, event.SkillCast{
		Caster:   r.owner.ID(),
		Target:   target.ID(),
		SkillID:  sk.ID,
		Skill:    sk.Name,
		CastTime: sk.CastingTime,
	})
	return Result{Success: true, Casting: true}
}

func (r *Resolver) pollCast() {
	if !r.casting {
		return
	}
	sk, target := r.castSkill, r.castTarget
	if !r.owner.Alive() {
		r.cancel("caster dead")
		return
	}
	if !target.Alive() {
		r.cancel("target died")
		return
	}
	if geom.Distance(r.owner.Position(), target.Position()) > sk.Range*r.opts.RangeExtender {
		r.cancel("target out of range")
		return
	}
	if r.clock.Now()-r.castStart < sk.CastingTime {
		return
	}
	if r.owner.Mana() < sk.ManaCost {
		r.cancel(ReasonNoMana.String())
		return
	}
	r.clear()
	r.resolve(sk, target)
}

// CancelCast aborts the current cast. No mana is spent and no damage is dealt.
func (r *Resolver) CancelCast() {
	if r.casting {
		r.cancel("cancelled")
	}
}

func (r *Resolver) cancel(why string) {
	skillID := r.castSkill.ID
	r.clear()
	r.log.Debug("cast cancelled", zap.Int("skill", skillID), zap.String("reason", why))
	event.Emit(r.bus, event.CastCancelled{Caster: r.owner.ID(), SkillID: skillID, Reason: why})
}

func (r *Resolver) clear() {
	r.poll.Cancel()
	r.poll = nil
	r.casting = false
	r.castSkill = Skill{}
	r.castTarget = nil
}

// resolve spends mana, deals damage and starts the cooldown. Player skills do
// not roll evasion.
func (r *Resolver) resolve(sk Skill, target Target) int {
	r.owner.SpendMana(sk.ManaCost)

	kind := sk.Kind()
	att := r.owner.CombatStats()
	att.MagicAttack += sk.MagicAttack
	att.MeleeAttack += sk.MeleeAttack
	dmg := stats.ComputeDamage(r.rng, att, target.CombatStats(), kind)
	applied := target.ApplyDamage(dmg)

	r.startCooldown(sk)
	event.Emit(r.bus, event.DamageDealt{
		Source:   r.owner.ID(),
		Target:   target.ID(),
		Amount:   applied,
		Kind:     kind,
		SkillID:  sk.ID,
		TargetHP: target.HP(),
	})
	return applied
}

func (r *Resolver) startCooldown(sk Skill) {
	if sk.Cooldown <= 0 {
		return
	}
	r.cooldowns[sk.ID] = sk.Cooldown
	if r.decay.Active() {
		return
	}
	step := r.opts.CooldownTick.Seconds()
	r.decay = r.clock.Every(r.opts.CooldownTick, func() {
		r.cooldowns.decay(step)
		if len(r.cooldowns) == 0 {
			r.decay.Cancel()
			r.decay = nil
		}
	})
}

// Stop cancels every pending timer owned by the resolver.
func (r *Resolver) Stop() {
	r.clear()
	r.decay.Cancel()
	r.decay = nil
}
