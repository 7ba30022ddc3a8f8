package ecs

import "strconv"

// EntityID identifies a mob or the player. IDs are never recycled: a mob
// keeps its ID across death and respawn. The zero ID means "none".
type EntityID uint32

func (id EntityID) IsZero() bool { return id == 0 }

func (id EntityID) String() string { return "#" + strconv.FormatUint(uint64(id), 10) }

// EntityPool hands out IDs. Game loop goroutine only.
type EntityPool struct {
	last EntityID
}

func NewEntityPool() *EntityPool {
	return &EntityPool{}
}

func (p *EntityPool) Create() EntityID {
	p.last++
	return p.last
}

// Len returns how many IDs have been issued.
func (p *EntityPool) Len() int { return int(p.last) }
