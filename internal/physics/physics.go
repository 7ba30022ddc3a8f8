// Package physics is a headless kinematic stand-in for the render-side physics
// engine: bodies move by their velocity and stop at blocked areas.
package physics

import (
	"time"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
)

// Rect is an axis-aligned area, Min inclusive and Max exclusive.
type Rect struct {
	Min geom.Vec2
	Max geom.Vec2
}

func (r Rect) Contains(p geom.Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Empty reports a zero-area rect.
func (r Rect) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

type body struct {
	pos geom.Vec2
	vel geom.Vec2
}

// World holds every moving body. Accessed only from the game loop goroutine.
type World struct {
	bounds    Rect
	obstacles []Rect
	bodies    map[ecs.EntityID]*body
	order     []ecs.EntityID
}

// New creates a world. An empty bounds rect means unbounded.
func New(bounds Rect, obstacles []Rect) *World {
	return &World{
		bounds:    bounds,
		obstacles: obstacles,
		bodies:    make(map[ecs.EntityID]*body, 64),
	}
}

// IsBlocked reports whether p is outside the bounds or inside an obstacle.
func (w *World) IsBlocked(p geom.Vec2) bool {
	if !w.bounds.Empty() && !w.bounds.Contains(p) {
		return true
	}
	for _, o := range w.obstacles {
		if o.Contains(p) {
			return true
		}
	}
	return false
}

func (w *World) get(id ecs.EntityID) *body {
	b, ok := w.bodies[id]
	if !ok {
		b = &body{}
		w.bodies[id] = b
		w.order = append(w.order, id)
	}
	return b
}

// Place moves a body to p and stops it.
func (w *World) Place(id ecs.EntityID, p geom.Vec2) {
	b := w.get(id)
	b.pos = p
	b.vel = geom.Vec2{}
}

// SetVelocity sets a body's velocity in units per second.
func (w *World) SetVelocity(id ecs.EntityID, v geom.Vec2) {
	w.get(id).vel = v
}

func (w *World) Velocity(id ecs.EntityID) geom.Vec2 {
	if b, ok := w.bodies[id]; ok {
		return b.vel
	}
	return geom.Vec2{}
}

func (w *World) Position(id ecs.EntityID) (geom.Vec2, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return geom.Vec2{}, false
	}
	return b.pos, true
}

// Step integrates every moving body over dt and reports new positions to
// moved. A body whose next position is blocked stays where it is.
func (w *World) Step(dt time.Duration, moved func(id ecs.EntityID, pos geom.Vec2)) {
	sec := dt.Seconds()
	for _, id := range w.order {
		b := w.bodies[id]
		if b.vel.IsZero() {
			continue
		}
		next := b.pos.Add(b.vel.Scale(sec))
		if w.IsBlocked(next) {
			continue
		}
		b.pos = next
		if moved != nil {
			moved(id, next)
		}
	}
}
