package system

import (
	"time"

	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/sched"
)

// ClockSystem advances virtual time by one tick and runs every due timer:
// AI decisions, cast polls, cooldown decay, respawns. Phase 1 (PreUpdate).
type ClockSystem struct {
	clock *sched.Scheduler
	fired int
}

func NewClockSystem(clock *sched.Scheduler) *ClockSystem {
	return &ClockSystem{clock: clock}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *ClockSystem) Update(dt time.Duration) {
	s.fired += s.clock.Advance(dt)
}

// Fired returns the number of callbacks run so far.
func (s *ClockSystem) Fired() int { return s.fired }
