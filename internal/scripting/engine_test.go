package scripting

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/progression"
)

func TestShippedScriptsMatchDefaultTable(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.True(t, e.Has("exp_reward_multiplier"))
	for diff := -8; diff <= 8; diff++ {
		assert.InDelta(t, progression.DefaultMultipliers{}.Multiplier(diff), e.Multiplier(diff), 1e-9, "diff %d", diff)
	}
	assert.Equal(t, int64(25), progression.ExperienceReward(e, 22, 5, 1))

	r := e.CalcRegen(RegenContext{Constitution: 25, Intellect: 9, BaseHP: 1, BaseMP: 2})
	assert.Equal(t, RegenResult{HP: 3, MP: 2}, r)
}

func TestMissingFunctionFallsBack(t *testing.T) {
	e, err := NewEngineFromString(`x = 1`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.Has("exp_reward_multiplier"))
	assert.Equal(t, 1.15, e.Multiplier(4))
	assert.Equal(t, RegenResult{HP: 4, MP: 5}, e.CalcRegen(RegenContext{BaseHP: 4, BaseMP: 5}))
}

func TestScriptErrorFallsBack(t *testing.T) {
	e, err := NewEngineFromString(`
function exp_reward_multiplier(diff) error("boom") end
function calc_regen(ctx) return 7 end
`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 0.5, e.Multiplier(-5))
	assert.Equal(t, RegenResult{HP: 1, MP: 1}, e.CalcRegen(RegenContext{BaseHP: 1, BaseMP: 1}))
}

func TestCustomMultiplier(t *testing.T) {
	e, err := NewEngineFromString(`function exp_reward_multiplier(diff) return 2 end`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, int64(20), progression.ExperienceReward(e, 10, 1, 1))
}

func TestBadScriptFailsLoad(t *testing.T) {
	_, err := NewEngineFromString(`function (`, zap.NewNop())
	assert.Error(t, err)
}
