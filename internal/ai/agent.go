// Package ai drives mobs: one Controller state machine per Agent and a
// Registry owning them in spawn order.
package ai

import (
	"fmt"
	"time"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/stats"
)

type Faction int

const (
	Enemy Faction = iota
	Friend
)

func (f Faction) String() string {
	if f == Friend {
		return "friend"
	}
	return "enemy"
}

// ParseFaction accepts "friend" or "enemy"; empty means enemy.
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "", "enemy":
		return Enemy, nil
	case "friend":
		return Friend, nil
	}
	return Enemy, fmt.Errorf("unknown faction %q", s)
}

type State int

const (
	Idle State = iota
	Wandering
	Chasing
	Attacking
	Unsticking
	Dead
)

var stateNames = [...]string{"idle", "wandering", "chasing", "attacking", "unsticking", "dead"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Template is the static definition of a mob kind.
type Template struct {
	ID             int
	Name           string
	Level          int
	Health         int
	Speed          float64
	Combat         stats.Combat
	AggroRange     float64
	AttackRange    float64
	AttackCooldown time.Duration
	ExpReward      int
	Faction        Faction
}

// TemplateSource looks up mob templates by id.
type TemplateSource interface {
	Template(id int) (*Template, bool)
}

// Agent is one mob. Its identity survives death and respawn.
type Agent struct {
	id         ecs.EntityID
	templateID int

	hp      int
	maxHP   int
	combat  stats.Combat
	faction Faction

	pos   geom.Vec2
	spawn geom.Vec2

	dead   bool
	hidden bool
	state  State

	lastAttackAt time.Duration
	attacked     bool

	lastCheckPos geom.Vec2
	wanderDir    geom.Vec2
	heading      geom.Vec2

	decision  *sched.Handle
	stuck     *sched.Handle
	unstick   *sched.Handle
	lifecycle *sched.Handle

	ctl *Controller
}

func (a *Agent) ID() ecs.EntityID          { return a.id }
func (a *Agent) TemplateID() int           { return a.templateID }
func (a *Agent) HP() int                   { return a.hp }
func (a *Agent) MaxHP() int                { return a.maxHP }
func (a *Agent) Alive() bool               { return !a.dead && a.hp > 0 }
func (a *Agent) Dead() bool                { return a.dead }
func (a *Agent) Hidden() bool              { return a.hidden }
func (a *Agent) State() State              { return a.state }
func (a *Agent) Faction() Faction          { return a.faction }
func (a *Agent) Position() geom.Vec2       { return a.pos }
func (a *Agent) SpawnPoint() geom.Vec2     { return a.spawn }
func (a *Agent) CombatStats() stats.Combat { return a.combat }

// SetPosition is called by the physics layer after integrating movement.
func (a *Agent) SetPosition(p geom.Vec2) { a.pos = p }

// ApplyDamage takes hp off the agent. The first hit on a friend turns it
// hostile; reaching zero hp kills it.
func (a *Agent) ApplyDamage(n int) int {
	if a.dead || n <= 0 {
		return 0
	}
	if n > a.hp {
		n = a.hp
	}
	a.hp -= n
	if a.faction == Friend {
		a.faction = Enemy
	}
	if a.hp == 0 && a.ctl != nil {
		a.ctl.die()
	}
	return n
}

// reset restores spawn values from the template.
func (a *Agent) reset(t *Template) {
	a.hp = t.Health
	a.maxHP = t.Health
	a.combat = t.Combat
	a.faction = t.Faction
	a.pos = a.spawn
	a.dead = false
	a.hidden = false
	a.state = Idle
	a.attacked = false
	a.lastAttackAt = 0
	a.lastCheckPos = a.spawn
	a.wanderDir = geom.Vec2{}
	a.heading = geom.Vec2{}
}
