// Package present turns presentation events into log lines. It stands in for
// the render side: floating damage text, state animations and UI refreshes.
package present

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
)

// NameFunc resolves an entity id to a display name.
type NameFunc func(id ecs.EntityID) string

// Totals are running counters for the end-of-run summary.
type Totals struct {
	DamageDealt int64 // by the player
	DamageTaken int64
	Evaded      int
	Kills       int
	Experience  int64
	LevelUps    int
	Deaths      int
	Suppressed  int
}

// LogSink logs every presentation event. Handlers run on the game loop
// goroutine during event dispatch.
type LogSink struct {
	log    *zap.Logger
	p      *message.Printer
	names  NameFunc
	player ecs.EntityID
	totals Totals
}

// NewLogSink builds a sink formatting numbers for locale ("en", "de", ...).
func NewLogSink(log *zap.Logger, locale string, names NameFunc) (*LogSink, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("present: locale %q: %w", locale, err)
	}
	if names == nil {
		names = func(id ecs.EntityID) string { return id.String() }
	}
	return &LogSink{log: log, p: message.NewPrinter(tag), names: names}, nil
}

// Totals returns the counters so far.
func (s *LogSink) Totals() Totals { return s.totals }

// Attach subscribes the sink to every presentation event. player marks whose
// damage counts as dealt rather than taken.
func (s *LogSink) Attach(bus *event.Bus, player ecs.EntityID) {
	s.player = player
	event.Subscribe(bus, s.onDamage)
	event.Subscribe(bus, s.onEvaded)
	event.Subscribe(bus, s.onSkillCast)
	event.Subscribe(bus, s.onCastCancelled)
	event.Subscribe(bus, s.onStateChanged)
	event.Subscribe(bus, s.onAgentDied)
	event.Subscribe(bus, s.onAgentHidden)
	event.Subscribe(bus, s.onAgentRespawned)
	event.Subscribe(bus, s.onExperience)
	event.Subscribe(bus, s.onLevelUp)
	event.Subscribe(bus, s.onPlayerDied)
	event.Subscribe(bus, s.onMessage)
}

func (s *LogSink) onDamage(e event.DamageDealt) {
	if e.Source == s.player {
		s.totals.DamageDealt += int64(e.Amount)
	} else {
		s.totals.DamageTaken += int64(e.Amount)
	}
	s.log.Info(s.p.Sprintf("%s hits %s for %d %s damage (%d hp left)",
		s.names(e.Source), s.names(e.Target), e.Amount, e.Kind, e.TargetHP),
		zap.Int("amount", e.Amount),
		zap.Int("skill", e.SkillID))
}

func (s *LogSink) onEvaded(e event.AttackEvaded) {
	s.totals.Evaded++
	s.log.Info(s.p.Sprintf("%s evades %s's %s attack", s.names(e.Defender), s.names(e.Attacker), e.Kind))
}

func (s *LogSink) onSkillCast(e event.SkillCast) {
	s.log.Info(s.p.Sprintf("%s begins casting %s at %s (%v)",
		s.names(e.Caster), e.Skill, s.names(e.Target), e.CastTime))
}

func (s *LogSink) onCastCancelled(e event.CastCancelled) {
	s.log.Info(s.p.Sprintf("%s's cast was interrupted: %s", s.names(e.Caster), e.Reason),
		zap.Int("skill", e.SkillID))
}

func (s *LogSink) onStateChanged(e event.StateChanged) {
	s.log.Debug(s.p.Sprintf("%s %s -> %s", s.names(e.Agent), e.From, e.To))
}

func (s *LogSink) onAgentDied(e event.AgentDied) {
	s.totals.Kills++
	s.log.Info(s.p.Sprintf("%s (level %d) dies", s.names(e.Agent), e.Level))
}

func (s *LogSink) onAgentHidden(e event.AgentHidden) {
	s.log.Debug(s.p.Sprintf("%s fades away", s.names(e.Agent)))
}

func (s *LogSink) onAgentRespawned(e event.AgentRespawned) {
	s.log.Info(s.p.Sprintf("%s respawns at (%.0f, %.0f)", s.names(e.Agent), e.Pos.X, e.Pos.Y))
}

func (s *LogSink) onExperience(e event.ExperienceGained) {
	s.totals.Experience += e.Amount
	s.log.Info(s.p.Sprintf("%s gains %d experience (total %d)", s.names(e.Player), e.Amount, e.Total))
}

func (s *LogSink) onLevelUp(e event.LevelUp) {
	s.totals.LevelUps++
	s.log.Info(s.p.Sprintf("%s reaches level %d", s.names(e.Player), e.Level))
}

func (s *LogSink) onPlayerDied(e event.PlayerDied) {
	s.totals.Deaths++
	s.log.Warn(s.p.Sprintf("%s was slain by %s", s.names(e.Player), s.names(e.KilledBy)))
}

func (s *LogSink) onMessage(e event.Message) {
	s.totals.Suppressed++
	s.log.Info(s.p.Sprintf("[%s] %s", s.names(e.Target), e.Text))
}

// Summary renders the totals in one line.
func (s *LogSink) Summary() string {
	t := s.totals
	return s.p.Sprintf("kills %d, damage dealt %d, damage taken %d, evaded %d, experience %d, level-ups %d, deaths %d",
		t.Kills, t.DamageDealt, t.DamageTaken, t.Evaded, t.Experience, t.LevelUps, t.Deaths)
}
