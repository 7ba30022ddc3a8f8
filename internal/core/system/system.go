package system

import "time"

// Phase orders systems within a single tick. Lower phases run first.
type Phase int

const (
	PhaseInput      Phase = iota // 0: player intent (autopilot, commands)
	PhasePreUpdate               // 1: deliver last tick's events, advance timers
	PhaseUpdate                  // 2: mob FSMs
	PhasePostUpdate              // 3: movement integration, regen
	PhaseOutput                  // 4: presentation
	PhasePersist                 // 5: autosave + experience ledger
	PhaseCleanup                 // 6: end-of-tick bookkeeping
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "persist", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is one unit of per-tick work.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
