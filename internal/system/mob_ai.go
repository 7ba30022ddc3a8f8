package system

import (
	"time"

	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/world"
)

// MobAISystem runs every mob's per-tick FSM step against the player.
// Phase 2 (Update). Timer-driven transitions happen in ClockSystem.
type MobAISystem struct {
	world *world.State
}

func NewMobAISystem(ws *world.State) *MobAISystem {
	return &MobAISystem{world: ws}
}

func (s *MobAISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MobAISystem) Update(_ time.Duration) {
	s.world.Update()
}
