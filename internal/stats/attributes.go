// Package stats derives combat stats from base attributes and equipment and
// holds the damage and evasion formulas. Nothing here keeps state between calls.
package stats

import "fmt"

// Attribute names as used in data files and growth allocation.
const (
	Intellect    = "intellect"
	Strength     = "strength"
	Dexterity    = "dexterity"
	Constitution = "constitution"
)

// AttributeNames lists the four growable attributes in display order.
var AttributeNames = [4]string{Intellect, Strength, Dexterity, Constitution}

// Attributes are the base scalars of a character.
type Attributes struct {
	Intellect    int
	Strength     int
	Dexterity    int
	Constitution int

	BaseHealth int
	BaseMana   int
	BaseSpeed  float64
}

// Get returns the value of a named attribute.
func (a Attributes) Get(name string) (int, bool) {
	switch name {
	case Intellect:
		return a.Intellect, true
	case Strength:
		return a.Strength, true
	case Dexterity:
		return a.Dexterity, true
	case Constitution:
		return a.Constitution, true
	}
	return 0, false
}

// Add increments a named attribute by n.
func (a *Attributes) Add(name string, n int) error {
	switch name {
	case Intellect:
		a.Intellect += n
	case Strength:
		a.Strength += n
	case Dexterity:
		a.Dexterity += n
	case Constitution:
		a.Constitution += n
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	return nil
}

// Contribution is what one point of an attribute adds to each derived stat.
type Contribution struct {
	Health       float64
	Mana         float64
	MagicAttack  float64
	MeleeAttack  float64
	MagicDefense float64
	MeleeDefense float64
	MagicEvasion float64
	MeleeEvasion float64
}

// Weights maps attribute name → per-point contribution. Treated as read-only.
type Weights map[string]Contribution

// DefaultWeights is the stock balance table used when no data file overrides it.
func DefaultWeights() Weights {
	return Weights{
		Intellect:    {Mana: 5, MagicAttack: 2, MagicDefense: 1},
		Strength:     {MeleeAttack: 2, MeleeDefense: 1},
		Dexterity:    {MeleeAttack: 0.5, MagicEvasion: 0.5, MeleeEvasion: 0.5},
		Constitution: {Health: 10, MagicDefense: 0.5, MeleeDefense: 0.5},
	}
}
