// Package progression tracks experience and levels on a geometric curve and
// scales kill rewards by level difference.
package progression

import "math"

// Curve holds the leveling constants.
type Curve struct {
	BaseExp  int64
	Growth   float64
	MaxLevel int
}

// DefaultCurve is 100 exp for level 2, ×1.5 per level, capped at 50.
func DefaultCurve() Curve {
	return Curve{BaseExp: 100, Growth: 1.5, MaxLevel: 50}
}

// Next returns the cost of the level after one that cost prev.
func (c Curve) Next(prev int64) int64 {
	return int64(math.Floor(float64(prev) * c.Growth))
}

// Cumulative returns the total experience at which each level starts,
// indexed by level (index 0 unused, index 1 is 0).
func (c Curve) Cumulative() []int64 {
	if c.MaxLevel < 1 {
		return nil
	}
	out := make([]int64, c.MaxLevel+1)
	cost := c.BaseExp
	for lv := 2; lv <= c.MaxLevel; lv++ {
		out[lv] = out[lv-1] + cost
		cost = c.Next(cost)
	}
	return out
}
