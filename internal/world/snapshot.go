package world

import (
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/stats"
)

// Snapshot is the persisted part of a player. Level is not stored; it is
// replayed from TotalExp on restore.
type Snapshot struct {
	Name       string
	Attributes stats.Attributes
	Unspent    int
	TotalExp   int64
	HP         int
	MP         int
	Pos        geom.Vec2
	Equipment  map[stats.Slot]string
}

// Snapshot copies the player's persisted state. The result shares nothing
// with the player and can be handed to another goroutine.
func (p *Player) Snapshot() Snapshot {
	eq := make(map[stats.Slot]string, p.equip.Len())
	p.equip.Each(func(slot stats.Slot, name string) { eq[slot] = name })
	return Snapshot{
		Name:       p.Name,
		Attributes: p.attrs,
		Unspent:    p.unspent,
		TotalExp:   p.prog.TotalExp(),
		HP:         p.vitals.HP,
		MP:         p.vitals.MP,
		Pos:        p.pos,
		Equipment:  eq,
	}
}

// RestorePlayer rebuilds the player from a snapshot. Unknown items in the
// snapshot are dropped with a warning. A player saved dead comes back at full
// vitals.
func (s *State) RestorePlayer(snap Snapshot) *Player {
	p := s.NewPlayer(PlayerSpec{Name: snap.Name, Attributes: snap.Attributes, Pos: snap.Pos})
	p.prog = progression.Restore(s.opts.Curve, snap.TotalExp)
	p.prog.OnLevelUp = p.onLevelUp
	p.unspent = snap.Unspent
	for _, name := range snap.Equipment {
		p.Equip(name)
	}
	if snap.HP > 0 {
		p.vitals.HP, p.vitals.MP = snap.HP, snap.MP
		p.SyncVitals()
	} else {
		p.Replenish()
	}
	p.Dirty = false
	return p
}
