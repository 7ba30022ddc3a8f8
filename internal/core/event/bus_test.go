package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsVisibleNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e LevelUp) { got = append(got, e.Level) })

	Emit(b, LevelUp{Level: 2})
	b.DispatchAll()
	assert.Empty(t, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{2}, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{2}, got, "events dispatch once")
}

func TestDispatchOrderFollowsFirstEmit(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(Message) { got = append(got, "msg") })
	Subscribe(b, func(AgentHidden) { got = append(got, "hidden") })

	Emit(b, AgentHidden{})
	Emit(b, Message{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"hidden", "msg"}, got)
}

func TestNilBusDrops(t *testing.T) {
	assert.NotPanics(t, func() { Emit[*Bus](nil, nil) })
}
