// Package data loads the read-only YAML tables the simulation runs on.
package data

import (
	"path/filepath"

	"github.com/l1jgo/simcore/internal/stats"
)

// Store bundles every table. Immutable after Load.
type Store struct {
	Mobs    *MobTable
	Skills  *SkillTable
	Items   *ItemTable
	Spawns  []SpawnEntry
	Weights stats.Weights
	Zone    *Zone
}

// Load reads every table from dir.
func Load(dir string) (*Store, error) {
	var (
		s   Store
		err error
	)
	if s.Mobs, err = LoadMobTable(filepath.Join(dir, "mob_list.yaml")); err != nil {
		return nil, err
	}
	if s.Skills, err = LoadSkillTable(filepath.Join(dir, "skill_list.yaml")); err != nil {
		return nil, err
	}
	if s.Items, err = LoadItemTable(filepath.Join(dir, "item_list.yaml")); err != nil {
		return nil, err
	}
	if s.Spawns, err = LoadSpawnList(filepath.Join(dir, "spawn_list.yaml")); err != nil {
		return nil, err
	}
	if s.Weights, err = LoadStatWeights(filepath.Join(dir, "stat_weights.yaml")); err != nil {
		return nil, err
	}
	if s.Zone, err = LoadZone(filepath.Join(dir, "zone.yaml")); err != nil {
		return nil, err
	}
	return &s, nil
}
