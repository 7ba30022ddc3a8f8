package data

import (
	"fmt"

	"github.com/l1jgo/simcore/internal/stats"
)

type contributionEntry struct {
	Health       float64 `yaml:"health"`
	Mana         float64 `yaml:"mana"`
	MagicAttack  float64 `yaml:"magic_attack"`
	MeleeAttack  float64 `yaml:"melee_attack"`
	MagicDefense float64 `yaml:"magic_defense"`
	MeleeDefense float64 `yaml:"melee_defense"`
	MagicEvasion float64 `yaml:"magic_evasion"`
	MeleeEvasion float64 `yaml:"melee_evasion"`
}

type weightsFile struct {
	Weights map[string]contributionEntry `yaml:"weights"`
}

// LoadStatWeights loads the attribute → derived-stat weight table.
func LoadStatWeights(path string) (stats.Weights, error) {
	var f weightsFile
	if err := readYAML(path, "stat_weights", &f); err != nil {
		return nil, err
	}
	w := make(stats.Weights, len(f.Weights))
	for name, e := range f.Weights {
		var scratch stats.Attributes
		if err := scratch.Add(name, 0); err != nil {
			return nil, fmt.Errorf("stat_weights: %w", err)
		}
		w[name] = stats.Contribution{
			Health:       e.Health,
			Mana:         e.Mana,
			MagicAttack:  e.MagicAttack,
			MeleeAttack:  e.MeleeAttack,
			MagicDefense: e.MagicDefense,
			MeleeDefense: e.MeleeDefense,
			MagicEvasion: e.MagicEvasion,
			MeleeEvasion: e.MeleeEvasion,
		}
	}
	return w, nil
}
