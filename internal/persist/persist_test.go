package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/config"
	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/stats"
	"github.com/l1jgo/simcore/internal/world"
)

// testDB connects to SIMCORE_TEST_DSN on a fresh schema, or skips.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("SIMCORE_TEST_DSN")
	if dsn == "" {
		t.Skip("SIMCORE_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 4}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, ResetMigrations(ctx, db.Pool))
	version, err := RunMigrations(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	return db
}

func TestProgressionRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewProgressionRepo(db)
	ctx := context.Background()

	_, err := repo.Load(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	snap := world.Snapshot{
		Name:       "hero",
		Attributes: stats.Attributes{Intellect: 6, Strength: 7, Dexterity: 4, Constitution: 5, BaseHealth: 60, BaseMana: 20, BaseSpeed: 100},
		Unspent:    2,
		TotalExp:   390,
		HP:         55,
		MP:         12,
		Pos:        geom.V(120.5, 80),
		Equipment:  map[stats.Slot]string{stats.SlotWeapon: "short sword", stats.SlotArmor: "leather armor"},
	}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	snap.TotalExp = 1000
	delete(snap.Equipment, stats.SlotArmor)
	require.NoError(t, repo.Save(ctx, snap))
	got, err = repo.Load(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.TotalExp)
	assert.Len(t, got.Equipment, 1)

	require.NoError(t, repo.Delete(ctx, "hero"))
	assert.ErrorIs(t, repo.Delete(ctx, "hero"), ErrNotFound)
}

func TestExpLogAppend(t *testing.T) {
	db := testDB(t)
	repo := NewExpLogRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, nil))
	require.NoError(t, repo.Append(ctx, []ExpEntry{
		{Character: "hero", Amount: 25, TotalExp: 25, Level: 1},
		{Character: "hero", Amount: 110, TotalExp: 135, Level: 2},
	}))
	sum, err := repo.Sum(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, int64(135), sum)
}
