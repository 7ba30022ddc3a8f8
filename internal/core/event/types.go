package event

import (
	"time"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/stats"
)

// Presentation notifications. The core emits them and never reads them back.

type DamageDealt struct {
	Source   ecs.EntityID
	Target   ecs.EntityID
	Amount   int
	Kind     stats.AttackKind
	SkillID  int // 0 for mob strikes
	TargetHP int
}

type AttackEvaded struct {
	Attacker ecs.EntityID
	Defender ecs.EntityID
	Kind     stats.AttackKind
}

type SkillCast struct {
	Caster   ecs.EntityID
	Target   ecs.EntityID
	SkillID  int
	Skill    string
	CastTime time.Duration
}

type CastCancelled struct {
	Caster  ecs.EntityID
	SkillID int
	Reason  string
}

type StateChanged struct {
	Agent ecs.EntityID
	From  string
	To    string
}

type AgentDied struct {
	Agent    ecs.EntityID
	Template int
	Level    int
}

type AgentHidden struct {
	Agent ecs.EntityID
}

type AgentRespawned struct {
	Agent ecs.EntityID
	Pos   geom.Vec2
}

type ExperienceGained struct {
	Player ecs.EntityID
	Amount int64
	Total  int64
}

type LevelUp struct {
	Player ecs.EntityID
	Level  int
}

type PlayerDied struct {
	Player   ecs.EntityID
	KilledBy ecs.EntityID
}

// Message is a suppressed-action notice for the player ("not enough mana").
type Message struct {
	Target ecs.EntityID
	Text   string
}
