package progression

import "math"

// MultiplierTable maps mobLevel-playerLevel to an experience multiplier.
type MultiplierTable interface {
	Multiplier(diff int) float64
}

// MultiplierFunc adapts a plain function to MultiplierTable.
type MultiplierFunc func(diff int) float64

func (f MultiplierFunc) Multiplier(diff int) float64 { return f(diff) }

// DefaultMultipliers is the stock level-difference table.
type DefaultMultipliers struct{}

// Per-mille, so rewards floor exactly.
var defaultMultipliers = [11]int64{
	500, 750, 800, 900, 970, // -5 .. -1
	1000,                         // 0
	1030, 1050, 1100, 1150, 1200, // +1 .. +5
}

func (DefaultMultipliers) Multiplier(diff int) float64 {
	switch {
	case diff < -5:
		return 0
	case diff > 5:
		diff = 5
	}
	return float64(defaultMultipliers[diff+5]) / 1000
}

// ExperienceReward is floor(baseExp × multiplier(mobLevel-playerLevel)).
// A nil table uses DefaultMultipliers.
func ExperienceReward(table MultiplierTable, baseExp, mobLevel, playerLevel int) int64 {
	if table == nil {
		table = DefaultMultipliers{}
	}
	// Multipliers are taken to three decimals so the floor is done in
	// integers: 100*1.15 in floating point is 114.99999999999999.
	perMille := int64(math.Round(table.Multiplier(mobLevel-playerLevel) * 1000))
	if perMille <= 0 || baseExp <= 0 {
		return 0
	}
	return int64(baseExp) * perMille / 1000
}
