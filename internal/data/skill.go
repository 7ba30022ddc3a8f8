package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/l1jgo/simcore/internal/combat"
)

// SkillTable holds all skills indexed by id.
type SkillTable struct {
	skills map[int]*combat.Skill
	byName map[string]*combat.Skill
}

// Get returns a skill by id, or nil if not found.
func (t *SkillTable) Get(id int) *combat.Skill {
	return t.skills[id]
}

// GetByName returns a skill by its exact name, or nil if not found.
func (t *SkillTable) GetByName(name string) *combat.Skill {
	return t.byName[name]
}

// Count returns total loaded skills.
func (t *SkillTable) Count() int {
	return len(t.skills)
}

// All returns all skills ordered by id.
func (t *SkillTable) All() []*combat.Skill {
	result := make([]*combat.Skill, 0, len(t.skills))
	for _, s := range t.skills {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// --- YAML loading ---

type skillEntry struct {
	SkillID     int     `yaml:"skill_id"`
	Name        string  `yaml:"name"`
	ManaCost    int     `yaml:"mana_cost"`
	Range       float64 `yaml:"range"`
	MagicAttack int     `yaml:"magic_attack"`
	MeleeAttack int     `yaml:"melee_attack"`
	CastingTime int     `yaml:"casting_time"` // ms, 0 = instant
	Cooldown    float64 `yaml:"cooldown"`     // seconds
}

type skillListFile struct {
	Skills []skillEntry `yaml:"skills"`
}

// LoadSkillTable loads skill definitions from YAML.
func LoadSkillTable(path string) (*SkillTable, error) {
	var f skillListFile
	if err := readYAML(path, "skills", &f); err != nil {
		return nil, err
	}
	t := &SkillTable{
		skills: make(map[int]*combat.Skill, len(f.Skills)),
		byName: make(map[string]*combat.Skill, len(f.Skills)),
	}
	for _, e := range f.Skills {
		if _, dup := t.skills[e.SkillID]; dup {
			return nil, fmt.Errorf("skills: duplicate skill_id %d", e.SkillID)
		}
		sk := &combat.Skill{
			ID:          e.SkillID,
			Name:        e.Name,
			ManaCost:    e.ManaCost,
			Range:       e.Range,
			MagicAttack: e.MagicAttack,
			MeleeAttack: e.MeleeAttack,
			CastingTime: time.Duration(e.CastingTime) * time.Millisecond,
			Cooldown:    e.Cooldown,
		}
		t.skills[sk.ID] = sk
		t.byName[sk.Name] = sk
	}
	return t, nil
}
