package world

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/stats"
)

type templates map[int]*ai.Template

func (m templates) Template(id int) (*ai.Template, bool) {
	t, ok := m[id]
	return t, ok
}

type items map[string]stats.Item

func (m items) Item(name string) (stats.Item, bool) {
	it, ok := m[name]
	return it, ok
}

type nopPhysics struct{}

func (nopPhysics) IsBlocked(geom.Vec2) bool            { return false }
func (nopPhysics) SetVelocity(ecs.EntityID, geom.Vec2) {}
func (nopPhysics) Place(ecs.EntityID, geom.Vec2)       {}

var testItems = items{
	"ring of vigor": {Name: "ring of vigor", Slot: stats.SlotRing, Health: 50},
	"oak staff":     {Name: "oak staff", Slot: stats.SlotWeapon, MagicAttack: 4},
}

func newState(t *testing.T, bus *event.Bus) *State {
	t.Helper()
	return NewState(Options{
		Clock:   sched.New(),
		Rand:    rand.New(rand.NewPCG(7, 7)),
		Physics: nopPhysics{},
		Mobs: templates{
			1: {ID: 1, Name: "rat", Level: 1, Health: 10, Speed: 10, AggroRange: 30,
				AttackRange: 5, AttackCooldown: time.Second, ExpReward: 50},
		},
		Items:          testItems,
		Curve:          progression.DefaultCurve(),
		Timing:         ai.DefaultTiming(),
		Combat:         combat.DefaultOptions(),
		PointsPerLevel: 2,
		TargetRange:    100,
		Bus:            bus,
		Log:            zaptest.NewLogger(t),
	})
}

func hero(s *State) *Player {
	return s.NewPlayer(PlayerSpec{
		Name: "hero",
		Attributes: stats.Attributes{
			Intellect: 10, Strength: 10, Dexterity: 10, Constitution: 10,
			BaseHealth: 100, BaseMana: 50, BaseSpeed: 40,
		},
		Pos: geom.V(0, 0),
	})
}

func TestNewPlayerStartsFull(t *testing.T) {
	p := hero(newState(t, nil))
	assert.Equal(t, 200, p.MaxHP())
	assert.Equal(t, 200, p.HP())
	assert.Equal(t, 100, p.MP())
	assert.Equal(t, 1, p.Level())
	assert.False(t, p.Dirty)
}

func TestKillAwardsExperience(t *testing.T) {
	bus := event.NewBus()
	s := newState(t, bus)
	p := hero(s)
	rat, err := s.Mobs.Spawn(1, geom.V(10, 0))
	require.NoError(t, err)

	var gained []event.ExperienceGained
	event.Subscribe(bus, func(e event.ExperienceGained) { gained = append(gained, e) })

	rat.ApplyDamage(100)
	assert.Equal(t, int64(50), p.Progression().TotalExp())

	bus.SwapBuffers()
	bus.DispatchAll()
	require.Len(t, gained, 1)
	assert.Equal(t, int64(50), gained[0].Amount)
}

func TestKillRewardSuppressedForLowMobs(t *testing.T) {
	s := newState(t, nil)
	p := hero(s)
	p.GainExperience(1317)
	require.Equal(t, 7, p.Level())

	rat, err := s.Mobs.Spawn(1, geom.V(10, 0))
	require.NoError(t, err)
	rat.ApplyDamage(100)
	assert.Equal(t, int64(1317), p.Progression().TotalExp())
}

func TestLevelUpReplenishesAndGrantsPoints(t *testing.T) {
	bus := event.NewBus()
	p := hero(newState(t, bus))
	var levels []int
	event.Subscribe(bus, func(e event.LevelUp) { levels = append(levels, e.Level) })

	p.ApplyDamage(120)
	require.True(t, p.SpendMana(40))

	assert.Equal(t, 2, p.GainExperience(250))
	assert.Equal(t, 3, p.Level())
	assert.Equal(t, 4, p.UnspentPoints())
	assert.Equal(t, p.MaxHP(), p.HP())
	assert.Equal(t, p.MaxMP(), p.MP())

	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []int{2, 3}, levels)
}

func TestAllocatePoint(t *testing.T) {
	p := hero(newState(t, nil))
	assert.ErrorIs(t, p.AllocatePoint(stats.Constitution), ErrNoUnspentPoints)

	p.GainExperience(100)
	require.Equal(t, 2, p.UnspentPoints())

	assert.Error(t, p.AllocatePoint("luck"))
	assert.Equal(t, 2, p.UnspentPoints())

	require.NoError(t, p.AllocatePoint(stats.Constitution))
	assert.Equal(t, 1, p.UnspentPoints())
	assert.Equal(t, 11, p.Attributes().Constitution)
	assert.Equal(t, 210, p.MaxHP())
	assert.True(t, p.Dirty)
}

func TestEquipUnequipClampsVitals(t *testing.T) {
	bus := event.NewBus()
	p := hero(newState(t, bus))
	var msgs []string
	event.Subscribe(bus, func(e event.Message) { msgs = append(msgs, e.Text) })

	require.True(t, p.Equip("ring of vigor"))
	assert.Equal(t, 250, p.MaxHP())
	assert.Equal(t, 200, p.HP(), "equipping raises the cap, not the current value")

	p.Replenish()
	assert.Equal(t, 250, p.HP())

	p.Unequip(stats.SlotRing)
	assert.Equal(t, 200, p.MaxHP())
	assert.Equal(t, 200, p.HP())

	assert.False(t, p.Equip("cursed sock"))
	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []string{"unknown item cursed sock"}, msgs)
}

func TestEquipReplacesSlot(t *testing.T) {
	p := hero(newState(t, nil))
	base := p.CombatStats().MagicAttack
	require.True(t, p.Equip("oak staff"))
	require.True(t, p.Equip("oak staff"))
	assert.Equal(t, base+4, p.CombatStats().MagicAttack)
	assert.Equal(t, 1, p.Equipment().Len())
}

func TestSnapshotRestore(t *testing.T) {
	s := newState(t, nil)
	p := hero(s)
	require.True(t, p.Equip("ring of vigor"))
	p.GainExperience(250)
	p.ApplyDamage(30)
	p.SetPosition(geom.V(12, 34))
	snap := p.Snapshot()

	s2 := newState(t, nil)
	q := s2.RestorePlayer(snap)
	assert.Same(t, q, s2.Player)
	assert.Equal(t, 3, q.Level())
	assert.Equal(t, int64(250), q.Progression().TotalExp())
	assert.Equal(t, 4, q.UnspentPoints())
	assert.Equal(t, "ring of vigor", q.Equipment().In(stats.SlotRing))
	assert.Equal(t, 220, q.HP())
	assert.Equal(t, geom.V(12, 34), q.Position())
	assert.False(t, q.Dirty)
}

func TestRestoreDeadPlayerComesBackFull(t *testing.T) {
	s := newState(t, nil)
	p := hero(s)
	p.ApplyDamage(1000)
	q := newState(t, nil).RestorePlayer(p.Snapshot())
	assert.True(t, q.Alive())
	assert.Equal(t, q.MaxHP(), q.HP())
}

func TestSpawnAllSkipsUnknownTemplates(t *testing.T) {
	s := newState(t, nil)
	n := s.SpawnAll([]SpawnPoint{
		{TemplateID: 1, Pos: geom.V(1, 1)},
		{TemplateID: 99, Pos: geom.V(2, 2)},
		{TemplateID: 1, Pos: geom.V(3, 3)},
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Mobs.Len())
}

func TestTargetingNeedsPlayer(t *testing.T) {
	s := newState(t, nil)
	_, err := s.Mobs.Spawn(1, geom.V(5, 0))
	require.NoError(t, err)
	assert.Nil(t, s.CycleTarget())

	hero(s)
	a := s.CycleTarget()
	require.NotNil(t, a)
	assert.True(t, s.SelectByClick(a))
}
