package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/stats"
)

func TestLoadShippedDataSet(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "data", "yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5, s.Mobs.Count())
	wolf, ok := s.Mobs.Template(2)
	require.True(t, ok)
	assert.Equal(t, "wolf", wolf.Name)
	assert.Equal(t, time.Second, wolf.AttackCooldown)
	assert.Equal(t, 14, wolf.Combat.MeleeAttack)

	deer, ok := s.Mobs.Template(4)
	require.True(t, ok)
	assert.Equal(t, ai.Friend, deer.Faction)

	fire := s.Skills.GetByName("firebolt")
	require.NotNil(t, fire)
	assert.Equal(t, time.Second, fire.CastingTime)
	assert.Equal(t, stats.Magic, fire.Kind())

	assert.Equal(t, stats.DefaultWeights(), s.Weights)
	assert.Len(t, SpawnPoints(s.Spawns), 11)
	assert.Equal(t, "greenfield", s.Zone.Name)
	assert.True(t, s.Zone.Obstacles[0].Contains(geom.V(610, 10)))
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestItemTableMiss(t *testing.T) {
	p := write(t, "items.yaml", "items:\n  - { name: cap, slot: helm, magic_defense: 1 }\n")
	items, err := LoadItemTable(p)
	require.NoError(t, err)
	items.WithLogger(zap.NewNop())

	it, ok := items.Item("cap")
	assert.True(t, ok)
	assert.Equal(t, stats.SlotHelm, it.Slot)

	_, ok = items.Item("crown")
	assert.False(t, ok)
	assert.True(t, items.missed["crown"])
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadItemTable(write(t, "items.yaml", "items:\n  - { name: x, slot: tail }\n"))
	assert.ErrorContains(t, err, "unknown slot")

	_, err = LoadMobTable(write(t, "mobs.yaml", "mobs:\n  - { mob_id: 1, hp: 5, faction: neutral }\n"))
	assert.ErrorContains(t, err, "unknown faction")

	_, err = LoadStatWeights(write(t, "w.yaml", "weights:\n  luck: { health: 1 }\n"))
	assert.ErrorContains(t, err, "unknown attribute")

	_, err = LoadSkillTable(write(t, "s.yaml", "skills: [ {skill_id: 1}, {skill_id: 1} ]\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = LoadSpawnList(write(t, "bad.yaml", "spawns: {"))
	assert.ErrorContains(t, err, "parse spawn_list")
}

func TestSpawnPointsExpandsCount(t *testing.T) {
	pts := SpawnPoints([]SpawnEntry{{MobID: 7, X: 10, Y: 5, Count: 3, Spacing: 20}, {MobID: 8}})
	require.Len(t, pts, 4)
	assert.Equal(t, geom.V(50, 5), pts[2].Pos)
	assert.Equal(t, 8, pts[3].TemplateID)
}
