package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/simcore/internal/data"
	"github.com/l1jgo/simcore/internal/progression"
)

func TestShippedDataIsClean(t *testing.T) {
	store, err := data.Load(filepath.Join("..", "..", "data", "yaml"))
	require.NoError(t, err)
	assert.Empty(t, check(store))
}

func TestCheckFlagsBrokenReferences(t *testing.T) {
	store, err := data.Load(filepath.Join("..", "..", "data", "yaml"))
	require.NoError(t, err)

	store.Spawns = append(store.Spawns, data.SpawnEntry{MobID: 999, X: 10, Y: 10})
	store.Zone.Skills = append(store.Zone.Skills, 999)
	store.Zone.Equipment = append(store.Zone.Equipment, "cursed sock")

	problems := check(store)
	assert.Contains(t, problems, "spawn at (10,10): unknown mob 999")
	assert.Contains(t, problems, "zone player: unknown skill 999")
	assert.Contains(t, problems, `zone player: unknown item "cursed sock"`)
}

func TestCheckFlagsDuplicateSkillNames(t *testing.T) {
	store, err := data.Load(filepath.Join("..", "..", "data", "yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "skill_list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`skills:
  - {skill_id: 1, name: strike, range: 40, melee_attack: 4}
  - {skill_id: 7, name: strike, range: 40, melee_attack: 6}
`), 0o644))
	store.Skills, err = data.LoadSkillTable(path)
	require.NoError(t, err)
	store.Zone.Skills = []int{1, 7}

	assert.Equal(t, []string{`skill 1 "strike": name also used by skill 7`}, check(store))
}

func TestCurveTable(t *testing.T) {
	c := progression.Curve{BaseExp: 100, Growth: 1.5, MaxLevel: 4}
	tbl := curveTable(c)
	require.Len(t, tbl.Levels, 4)
	assert.Equal(t, curveRow{Level: 1, Cumulative: 0, ToNext: 100}, tbl.Levels[0])
	assert.Equal(t, curveRow{Level: 3, Cumulative: 250, ToNext: 225}, tbl.Levels[2])
	assert.Equal(t, curveRow{Level: 4, Cumulative: 475}, tbl.Levels[3])

	var buf bytes.Buffer
	require.NoError(t, writeCurve(&buf, c))
	var back curveYAML
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, tbl, back)
}
