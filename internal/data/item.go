package data

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/stats"
)

// ItemTable holds equippable items indexed by name. It implements
// stats.ItemLookup; misses are logged once per name.
type ItemTable struct {
	items  map[string]stats.Item
	log    *zap.Logger
	missed map[string]bool
}

// Item implements stats.ItemLookup.
func (t *ItemTable) Item(name string) (stats.Item, bool) {
	it, ok := t.items[name]
	if !ok && t.log != nil && !t.missed[name] {
		t.missed[name] = true
		t.log.Warn("item lookup miss, contributes nothing", zap.String("item", name))
	}
	return it, ok
}

// WithLogger enables miss logging.
func (t *ItemTable) WithLogger(log *zap.Logger) *ItemTable {
	t.log = log
	return t
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// --- YAML loading ---

type itemEntry struct {
	Name         string  `yaml:"name"`
	Slot         string  `yaml:"slot"`
	Health       int     `yaml:"health"`
	Mana         int     `yaml:"mana"`
	MagicAttack  int     `yaml:"magic_attack"`
	MeleeAttack  int     `yaml:"melee_attack"`
	MagicDefense int     `yaml:"magic_defense"`
	MeleeDefense int     `yaml:"melee_defense"`
	MagicEvasion int     `yaml:"magic_evasion"`
	MeleeEvasion int     `yaml:"melee_evasion"`
	Speed        float64 `yaml:"speed"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTable loads equippable items from YAML.
func LoadItemTable(path string) (*ItemTable, error) {
	var f itemListFile
	if err := readYAML(path, "items", &f); err != nil {
		return nil, err
	}
	t := &ItemTable{
		items:  make(map[string]stats.Item, len(f.Items)),
		missed: make(map[string]bool),
	}
	for _, e := range f.Items {
		slot := stats.Slot(e.Slot)
		if !stats.ValidSlot(slot) {
			return nil, fmt.Errorf("item %q: unknown slot %q", e.Name, e.Slot)
		}
		t.items[e.Name] = stats.Item{
			Name:         e.Name,
			Slot:         slot,
			Health:       e.Health,
			Mana:         e.Mana,
			MagicAttack:  e.MagicAttack,
			MeleeAttack:  e.MeleeAttack,
			MagicDefense: e.MagicDefense,
			MeleeDefense: e.MeleeDefense,
			MagicEvasion: e.MagicEvasion,
			MeleeEvasion: e.MeleeEvasion,
			Speed:        e.Speed,
		}
	}
	return t, nil
}
