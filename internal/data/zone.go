package data

import (
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/physics"
	"github.com/l1jgo/simcore/internal/stats"
)

type rectEntry struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

func (r rectEntry) rect() physics.Rect {
	return physics.Rect{Min: geom.V(r.X1, r.Y1), Max: geom.V(r.X2, r.Y2)}
}

type playerEntry struct {
	X            float64  `yaml:"x"`
	Y            float64  `yaml:"y"`
	Intellect    int      `yaml:"intellect"`
	Strength     int      `yaml:"strength"`
	Dexterity    int      `yaml:"dexterity"`
	Constitution int      `yaml:"constitution"`
	BaseHealth   int      `yaml:"base_health"`
	BaseMana     int      `yaml:"base_mana"`
	BaseSpeed    float64  `yaml:"base_speed"`
	Equipment    []string `yaml:"equipment"`
	Skills       []int    `yaml:"skills"`
}

type zoneFile struct {
	Name      string      `yaml:"name"`
	Bounds    rectEntry   `yaml:"bounds"`
	Obstacles []rectEntry `yaml:"obstacles"`
	Player    playerEntry `yaml:"player"`
}

// Zone is the playfield: bounds, blocked areas and the starting character.
type Zone struct {
	Name       string
	Bounds     physics.Rect
	Obstacles  []physics.Rect
	Start      geom.Vec2
	Attributes stats.Attributes
	Equipment  []string
	Skills     []int
}

// LoadZone loads the zone layout from YAML.
func LoadZone(path string) (*Zone, error) {
	var f zoneFile
	if err := readYAML(path, "zone", &f); err != nil {
		return nil, err
	}
	z := &Zone{
		Name:   f.Name,
		Bounds: f.Bounds.rect(),
		Start:  geom.V(f.Player.X, f.Player.Y),
		Attributes: stats.Attributes{
			Intellect:    f.Player.Intellect,
			Strength:     f.Player.Strength,
			Dexterity:    f.Player.Dexterity,
			Constitution: f.Player.Constitution,
			BaseHealth:   f.Player.BaseHealth,
			BaseMana:     f.Player.BaseMana,
			BaseSpeed:    f.Player.BaseSpeed,
		},
		Equipment: f.Player.Equipment,
		Skills:    f.Player.Skills,
	}
	for _, o := range f.Obstacles {
		z.Obstacles = append(z.Obstacles, o.rect())
	}
	return z, nil
}
