package stats

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same draw every call.
type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}
func (r fixedRand) Float64() float64 { return r.f }

type itemMap map[string]Item

func (m itemMap) Item(name string) (Item, bool) {
	it, ok := m[name]
	return it, ok
}

func TestDeriveSumsWeightsAndItems(t *testing.T) {
	a := Attributes{Intellect: 3, Strength: 5, Dexterity: 3, Constitution: 2, BaseHealth: 50, BaseMana: 20, BaseSpeed: 100}
	var eq Equipment
	eq.Equip(SlotWeapon, "short sword")
	eq.Equip(SlotBoots, "boots of haste")
	eq.Equip(SlotRing, "lost ring")

	items := itemMap{
		"short sword":    {Name: "short sword", Slot: SlotWeapon, MeleeAttack: 4},
		"boots of haste": {Name: "boots of haste", Slot: SlotBoots, Speed: 15, MeleeEvasion: 2},
	}

	d := Derive(a, DefaultWeights(), &eq, items)
	assert.Equal(t, 50+20, d.Health)
	assert.Equal(t, 20+15, d.Mana)
	assert.Equal(t, 115.0, d.Speed)
	// 5*2 + floor(3*0.5) + 4
	assert.Equal(t, 10+1+4, d.MeleeAttack)
	assert.Equal(t, 6, d.MagicAttack)
	assert.Equal(t, 3+1, d.MagicDefense)
	assert.Equal(t, 5+1, d.MeleeDefense)
	assert.Equal(t, 1, d.MagicEvasion)
	assert.Equal(t, 1+2, d.MeleeEvasion)
}

func TestDerivePicksUpEquipmentChanges(t *testing.T) {
	a := Attributes{Strength: 1}
	items := itemMap{"axe": {Name: "axe", Slot: SlotWeapon, MeleeAttack: 7}}
	var eq Equipment

	assert.Equal(t, 2, Derive(a, DefaultWeights(), &eq, items).MeleeAttack)
	eq.Equip(SlotWeapon, "axe")
	assert.Equal(t, 9, Derive(a, DefaultWeights(), &eq, items).MeleeAttack)
	eq.Equip(SlotWeapon, "axe")
	assert.Equal(t, 1, eq.Len())
	eq.Unequip(SlotWeapon)
	assert.Equal(t, 2, Derive(a, DefaultWeights(), &eq, items).MeleeAttack)
}

func TestComputeDamageNeverBelowOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	att := Combat{MeleeAttack: 1, MagicAttack: 0}
	def := Combat{MeleeDefense: 500, MagicDefense: 500}
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, ComputeDamage(rng, att, def, Melee), 1)
		assert.GreaterOrEqual(t, ComputeDamage(rng, att, def, Magic), 1)
	}
}

func TestComputeDamageVariance(t *testing.T) {
	att := Combat{MagicAttack: 30}
	def := Combat{MagicDefense: 10}
	assert.Equal(t, 18, ComputeDamage(fixedRand{n: 0}, att, def, Magic))
	assert.Equal(t, 20, ComputeDamage(fixedRand{n: 2}, att, def, Magic))
	assert.Equal(t, 22, ComputeDamage(fixedRand{n: 4}, att, def, Magic))

	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 500; i++ {
		d := ComputeDamage(rng, att, def, Magic)
		require.GreaterOrEqual(t, d, 18)
		require.LessOrEqual(t, d, 22)
	}
}

func TestRollEvasionBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		assert.False(t, RollEvasion(rng, 0))
		assert.False(t, RollEvasion(rng, -5))
		assert.True(t, RollEvasion(rng, 100))
		assert.True(t, RollEvasion(rng, 250))
	}
	assert.True(t, RollEvasion(fixedRand{f: 0.29}, 30))
	assert.False(t, RollEvasion(fixedRand{f: 0.30}, 30))
}

func TestPreferredKind(t *testing.T) {
	assert.Equal(t, Melee, Combat{MeleeAttack: 5, MagicAttack: 5}.PreferredKind())
	assert.Equal(t, Magic, Combat{MeleeAttack: 4, MagicAttack: 5}.PreferredKind())
}

func TestVitalsSync(t *testing.T) {
	var v Vitals
	v.Sync(100, 40)
	assert.Equal(t, Vitals{HP: 100, MP: 40, ready: true}, v)

	v.Damage(30)
	v.Sync(120, 40)
	assert.Equal(t, 70, v.HP, "sync never raises currents")

	v.Sync(50, 10)
	assert.Equal(t, 50, v.HP)
	assert.Equal(t, 10, v.MP)

	v.Damage(500)
	v.Sync(50, 10)
	assert.Equal(t, 0, v.HP, "dead stays dead after first init")
}

func TestVitalsRestoreAndSpend(t *testing.T) {
	v := Vitals{HP: 10, MP: 5}
	v.Restore(100, 100, 40, 20)
	assert.Equal(t, 40, v.HP)
	assert.Equal(t, 20, v.MP)
	assert.False(t, v.SpendMana(21))
	assert.True(t, v.SpendMana(20))
	assert.Equal(t, 0, v.MP)
	assert.Equal(t, 40, v.Damage(99))
	assert.Equal(t, 0, v.HP)
}

func TestAttributesAdd(t *testing.T) {
	var a Attributes
	require.NoError(t, a.Add(Dexterity, 2))
	n, ok := a.Get(Dexterity)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Error(t, a.Add("luck", 1))
}
