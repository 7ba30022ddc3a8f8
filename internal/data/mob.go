package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/stats"
)

// --- YAML loading ---

type mobEntry struct {
	MobID          int     `yaml:"mob_id"`
	Name           string  `yaml:"name"`
	Level          int     `yaml:"level"`
	HP             int     `yaml:"hp"`
	Speed          float64 `yaml:"speed"`
	MagicAttack    int     `yaml:"magic_attack"`
	MeleeAttack    int     `yaml:"melee_attack"`
	MagicDefense   int     `yaml:"magic_defense"`
	MeleeDefense   int     `yaml:"melee_defense"`
	MagicEvasion   int     `yaml:"magic_evasion"`
	MeleeEvasion   int     `yaml:"melee_evasion"`
	AggroRange     float64 `yaml:"aggro_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown int     `yaml:"attack_cooldown"` // ms
	Exp            int     `yaml:"exp"`
	Faction        string  `yaml:"faction"` // "enemy" (default) or "friend"
}

type mobListFile struct {
	Mobs []mobEntry `yaml:"mobs"`
}

// MobTable holds all mob templates indexed by MobID.
type MobTable struct {
	templates map[int]*ai.Template
}

// LoadMobTable loads mob templates from a YAML file.
func LoadMobTable(path string) (*MobTable, error) {
	var f mobListFile
	if err := readYAML(path, "mob_list", &f); err != nil {
		return nil, err
	}
	t := &MobTable{templates: make(map[int]*ai.Template, len(f.Mobs))}
	for _, e := range f.Mobs {
		faction, err := ai.ParseFaction(e.Faction)
		if err != nil {
			return nil, fmt.Errorf("mob %d: %w", e.MobID, err)
		}
		if e.HP <= 0 {
			return nil, fmt.Errorf("mob %d: hp must be positive", e.MobID)
		}
		t.templates[e.MobID] = &ai.Template{
			ID:     e.MobID,
			Name:   e.Name,
			Level:  e.Level,
			Health: e.HP,
			Speed:  e.Speed,
			Combat: stats.Combat{
				MagicAttack:  e.MagicAttack,
				MeleeAttack:  e.MeleeAttack,
				MagicDefense: e.MagicDefense,
				MeleeDefense: e.MeleeDefense,
				MagicEvasion: e.MagicEvasion,
				MeleeEvasion: e.MeleeEvasion,
			},
			AggroRange:     e.AggroRange,
			AttackRange:    e.AttackRange,
			AttackCooldown: time.Duration(e.AttackCooldown) * time.Millisecond,
			ExpReward:      e.Exp,
			Faction:        faction,
		}
	}
	return t, nil
}

// Template implements ai.TemplateSource.
func (t *MobTable) Template(id int) (*ai.Template, bool) {
	tpl, ok := t.templates[id]
	return tpl, ok
}

// Count returns total loaded templates.
func (t *MobTable) Count() int {
	return len(t.templates)
}

// All returns every template ordered by id.
func (t *MobTable) All() []*ai.Template {
	out := make([]*ai.Template, 0, len(t.templates))
	for _, tpl := range t.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
