package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	n := 0
	s.After(100*time.Millisecond, func() { n++ })

	s.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, n)
	s.Advance(time.Millisecond)
	assert.Equal(t, 1, n)
	s.Advance(time.Second)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, s.Pending())
}

func TestEveryRepeatsUntilCancelled(t *testing.T) {
	s := New()
	n := 0
	h := s.Every(100*time.Millisecond, func() { n++ })

	s.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, n)
	h.Cancel()
	s.Advance(time.Second)
	assert.Equal(t, 3, n)
	assert.False(t, h.Active())
}

func TestCancelFromInsideCallback(t *testing.T) {
	s := New()
	n := 0
	var h *Handle
	h = s.Every(10*time.Millisecond, func() {
		n++
		if n == 2 {
			h.Cancel()
		}
	})
	s.Advance(time.Second)
	assert.Equal(t, 2, n)
}

func TestOrderAndNow(t *testing.T) {
	s := New()
	var got []string
	s.After(20*time.Millisecond, func() { got = append(got, "b") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(20*time.Millisecond, func() {
		got = append(got, "c")
		assert.Equal(t, 20*time.Millisecond, s.Now())
		s.After(0, func() { got = append(got, "d") })
	})

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 50*time.Millisecond, s.Now())
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	assert.NotPanics(t, h.Cancel)
	assert.False(t, h.Active())
}

func TestCancelAfterFire(t *testing.T) {
	s := New()
	h := s.After(time.Millisecond, func() {})
	other := s.After(5*time.Millisecond, func() {})
	s.Advance(2 * time.Millisecond)
	h.Cancel()
	assert.True(t, other.Active())
	assert.Equal(t, 1, s.Pending())
}
