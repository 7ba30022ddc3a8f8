package data

import (
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/world"
)

// SpawnEntry defines where and how many mobs to spawn. Count > 1 lays the
// extra mobs out in a row Spacing apart along X.
type SpawnEntry struct {
	MobID   int     `yaml:"mob_id"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Count   int     `yaml:"count"`
	Spacing float64 `yaml:"spacing"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadSpawnList loads spawn entries from YAML.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	var f spawnListFile
	if err := readYAML(path, "spawn_list", &f); err != nil {
		return nil, err
	}
	return f.Spawns, nil
}

// SpawnPoints expands entries into one point per mob.
func SpawnPoints(entries []SpawnEntry) []world.SpawnPoint {
	out := make([]world.SpawnPoint, 0, len(entries))
	for _, e := range entries {
		n := e.Count
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, world.SpawnPoint{
				TemplateID: e.MobID,
				Pos:        geom.V(e.X+float64(i)*e.Spacing, e.Y),
			})
		}
	}
	return out
}
