package ai

import (
	"fmt"
	"sort"

	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
)

// Registry owns every agent. Iteration follows spawn order.
type Registry struct {
	env   *Env
	pool  *ecs.EntityPool
	byID  *ecs.PtrComponentStore[Agent]
	order []*Agent

	selected int

	// OnDeath is called synchronously when an agent dies, before its
	// hide/respawn timers run.
	OnDeath func(a *Agent, tpl *Template)
}

func NewRegistry(pool *ecs.EntityPool, env *Env) *Registry {
	return &Registry{
		env:      env,
		pool:     pool,
		byID:     ecs.NewPtrComponentStore[Agent](),
		selected: -1,
	}
}

// Spawn creates an agent from a template at pos. It starts idle.
func (r *Registry) Spawn(templateID int, pos geom.Vec2) (*Agent, error) {
	tpl, ok := r.env.Templates.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("spawn: unknown mob template %d", templateID)
	}
	a := &Agent{
		id:         r.pool.Create(),
		templateID: templateID,
		spawn:      pos,
	}
	a.reset(tpl)
	c := newController(a, r.env)
	c.onDeath = r.died

	r.byID.Set(a.id, a)
	r.order = append(r.order, a)
	r.env.Physics.Place(a.id, pos)
	c.idle(tpl)
	return a, nil
}

func (r *Registry) died(a *Agent, tpl *Template) {
	if r.OnDeath != nil {
		r.OnDeath(a, tpl)
	}
}

func (r *Registry) Get(id ecs.EntityID) (*Agent, bool) {
	return r.byID.Get(id)
}

func (r *Registry) Len() int { return len(r.order) }

// Each visits agents in spawn order.
func (r *Registry) Each(fn func(*Agent)) {
	for _, a := range r.order {
		fn(a)
	}
}

// Update ticks every controller in spawn order. Each agent's transition,
// including the timers it schedules, completes before the next one runs.
func (r *Registry) Update(player combat.Target) {
	for _, a := range r.order {
		a.ctl.Update(player)
	}
}

// candidates returns live agents within rangeLimit of from, nearest first.
func (r *Registry) candidates(from geom.Vec2, rangeLimit float64) []*Agent {
	out := make([]*Agent, 0, 8)
	for _, a := range r.order {
		if a.dead {
			continue
		}
		if geom.Distance(from, a.pos) <= rangeLimit {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return geom.Distance(from, out[i].pos) < geom.Distance(from, out[j].pos)
	})
	return out
}

// CycleTarget selects the next agent in nearest-first order after the
// previous selection, wrapping around. Nil when nothing is in range, and the
// selection is left alone.
func (r *Registry) CycleTarget(playerPos geom.Vec2, rangeLimit float64) *Agent {
	list := r.candidates(playerPos, rangeLimit)
	if len(list) == 0 {
		return nil
	}
	r.selected = (r.selected + 1) % len(list)
	return list[r.selected]
}

// SelectByClick makes a the current selection. It reports false when a is
// not a live agent within rangeLimit.
func (r *Registry) SelectByClick(a *Agent, playerPos geom.Vec2, rangeLimit float64) bool {
	if a == nil {
		return false
	}
	for i, c := range r.candidates(playerPos, rangeLimit) {
		if c == a {
			r.selected = i
			return true
		}
	}
	return false
}
