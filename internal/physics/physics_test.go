package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/geom"
)

func TestStepMovesAndStopsAtObstacles(t *testing.T) {
	w := New(
		Rect{Min: geom.V(0, 0), Max: geom.V(1000, 1000)},
		[]Rect{{Min: geom.V(100, 0), Max: geom.V(120, 1000)}},
	)
	id := ecs.EntityID(1)
	w.Place(id, geom.V(50, 50))
	w.SetVelocity(id, geom.V(100, 0))

	var reported []geom.Vec2
	w.Step(250*time.Millisecond, func(_ ecs.EntityID, p geom.Vec2) { reported = append(reported, p) })
	pos, ok := w.Position(id)
	assert.True(t, ok)
	assert.Equal(t, geom.V(75, 50), pos)

	w.Step(250*time.Millisecond, nil)
	w.Step(250*time.Millisecond, nil)
	pos, _ = w.Position(id)
	assert.Equal(t, geom.V(75, 50), pos, "next step lands in the obstacle")
	assert.Len(t, reported, 1)

	assert.True(t, w.IsBlocked(geom.V(110, 10)))
	assert.True(t, w.IsBlocked(geom.V(-1, 10)))
	assert.False(t, w.IsBlocked(geom.V(10, 10)))
}

func TestUnboundedWorld(t *testing.T) {
	w := New(Rect{}, nil)
	assert.False(t, w.IsBlocked(geom.V(-1e6, 1e6)))
	_, ok := w.Position(ecs.EntityID(9))
	assert.False(t, ok)
}
