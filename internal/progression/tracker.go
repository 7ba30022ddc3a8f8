package progression

// Tracker is one character's experience state. Level is always the result of
// consuming the curve from total experience.
type Tracker struct {
	curve Curve

	total      int64
	level      int
	expForNext int64
	levelFloor int64

	// OnLevelUp is called once per level crossed, with the new level.
	OnLevelUp func(level int)
}

// NewTracker starts at level 1 with no experience.
func NewTracker(c Curve) *Tracker {
	return &Tracker{curve: c, level: 1, expForNext: c.BaseExp}
}

// Restore rebuilds a tracker from a stored total without firing OnLevelUp.
func Restore(c Curve, total int64) *Tracker {
	t := NewTracker(c)
	if total > 0 {
		t.total = total
		t.consume(nil)
	}
	return t
}

// Gain adds experience and returns how many levels were gained. Negative
// amounts are ignored.
func (t *Tracker) Gain(amount int64) int {
	if amount <= 0 {
		return 0
	}
	t.total += amount
	return t.consume(t.OnLevelUp)
}

func (t *Tracker) consume(hook func(int)) int {
	gained := 0
	for t.level < t.curve.MaxLevel && t.total >= t.levelFloor+t.expForNext {
		t.levelFloor += t.expForNext
		t.level++
		t.expForNext = t.curve.Next(t.expForNext)
		gained++
		if hook != nil {
			hook(t.level)
		}
	}
	return gained
}

func (t *Tracker) Level() int        { return t.level }
func (t *Tracker) TotalExp() int64   { return t.total }
func (t *Tracker) ExpForNext() int64 { return t.expForNext }
func (t *Tracker) LevelFloor() int64 { return t.levelFloor }
func (t *Tracker) AtMaxLevel() bool  { return t.level >= t.curve.MaxLevel }
func (t *Tracker) Curve() Curve      { return t.curve }

// Progress returns experience earned into the current level and the amount the
// level costs.
func (t *Tracker) Progress() (into, need int64) {
	return t.total - t.levelFloor, t.expForNext
}
