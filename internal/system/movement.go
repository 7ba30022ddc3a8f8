package system

import (
	"time"

	"github.com/l1jgo/simcore/internal/core/ecs"
	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/physics"
	"github.com/l1jgo/simcore/internal/world"
)

// MovementSystem integrates velocities and copies the resulting positions
// back onto mobs and the player. Phase 3 (PostUpdate).
type MovementSystem struct {
	phys  *physics.World
	world *world.State
}

func NewMovementSystem(phys *physics.World, ws *world.State) *MovementSystem {
	return &MovementSystem{phys: phys, world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	s.phys.Step(dt, s.moved)
}

func (s *MovementSystem) moved(id ecs.EntityID, pos geom.Vec2) {
	if p := s.world.Player; p != nil && p.ID() == id {
		p.SetPosition(pos)
		return
	}
	if a, ok := s.world.Mobs.Get(id); ok {
		a.SetPosition(pos)
	}
}
