// Package world assembles the player and the mob registry into one simulation
// state and wires kills to experience.
package world

import (
	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/stats"
)

// Options carries everything State needs. All lookups are read-only.
type Options struct {
	Clock       sched.Clock
	Rand        stats.Rand
	Physics     ai.Physics
	Mobs        ai.TemplateSource
	Items       stats.ItemLookup
	Weights     stats.Weights
	Multipliers progression.MultiplierTable
	Curve       progression.Curve
	Timing      ai.Timing
	Combat      combat.Options

	PointsPerLevel int
	TargetRange    float64

	Bus *event.Bus
	Log *zap.Logger
}

// SpawnPoint binds a mob template to a position.
type SpawnPoint struct {
	TemplateID int
	Pos        geom.Vec2
}

// PlayerSpec describes a new character.
type PlayerSpec struct {
	Name       string
	Attributes stats.Attributes
	Pos        geom.Vec2
}

// State is the whole simulation. Accessed only from the game loop goroutine.
type State struct {
	opts   Options
	pool   *ecs.EntityPool
	Mobs   *ai.Registry
	Player *Player
}

func NewState(opts Options) *State {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Weights == nil {
		opts.Weights = stats.DefaultWeights()
	}
	pool := ecs.NewEntityPool()
	s := &State{opts: opts, pool: pool}
	s.Mobs = ai.NewRegistry(pool, &ai.Env{
		Clock:     opts.Clock,
		Rand:      opts.Rand,
		Physics:   opts.Physics,
		Templates: opts.Mobs,
		Bus:       opts.Bus,
		Log:       opts.Log.Named("ai"),
		Timing:    opts.Timing,
	})
	s.Mobs.OnDeath = s.awardKill
	return s
}

// NewPlayer creates the controlled character with full vitals.
func (s *State) NewPlayer(spec PlayerSpec) *Player {
	p := &Player{
		id:             s.pool.Create(),
		Name:           spec.Name,
		attrs:          spec.Attributes,
		weights:        s.opts.Weights,
		items:          s.opts.Items,
		pos:            spec.Pos,
		pointsPerLevel: s.opts.PointsPerLevel,
		prog:           progression.NewTracker(s.opts.Curve),
		bus:            s.opts.Bus,
		log:            s.opts.Log.Named("player"),
	}
	p.prog.OnLevelUp = p.onLevelUp
	p.resolver = combat.NewResolver(p, s.opts.Clock, s.opts.Rand, s.opts.Bus, s.opts.Log.Named("combat"), s.opts.Combat)
	p.SyncVitals()
	s.opts.Physics.Place(p.id, p.pos)
	s.Player = p
	return p
}

// SpawnAll spawns a mob per spawn point. Unknown templates are logged and
// skipped. Returns the number spawned.
func (s *State) SpawnAll(points []SpawnPoint) int {
	n := 0
	for _, sp := range points {
		if _, err := s.Mobs.Spawn(sp.TemplateID, sp.Pos); err != nil {
			s.opts.Log.Warn("spawn skipped", zap.Int("template", sp.TemplateID), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

// Update ticks every mob against the player.
func (s *State) Update() {
	var target combat.Target
	if s.Player != nil {
		target = s.Player
	}
	s.Mobs.Update(target)
}

// CycleTarget tab-targets the next mob near the player.
func (s *State) CycleTarget() *ai.Agent {
	if s.Player == nil {
		return nil
	}
	return s.Mobs.CycleTarget(s.Player.Position(), s.opts.TargetRange)
}

// SelectByClick selects a clicked mob.
func (s *State) SelectByClick(a *ai.Agent) bool {
	if s.Player == nil {
		return false
	}
	return s.Mobs.SelectByClick(a, s.Player.Position(), s.opts.TargetRange)
}

func (s *State) awardKill(a *ai.Agent, tpl *ai.Template) {
	p := s.Player
	if p == nil {
		return
	}
	reward := progression.ExperienceReward(s.opts.Multipliers, tpl.ExpReward, tpl.Level, p.Level())
	if reward <= 0 {
		s.opts.Log.Debug("kill reward suppressed",
			zap.String("mob", tpl.Name),
			zap.Int("mob_level", tpl.Level),
			zap.Int("player_level", p.Level()))
		return
	}
	p.GainExperience(reward)
}
