package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(recorder{"persist", PhasePersist, &got})
	r.Register(recorder{"ai", PhaseUpdate, &got})
	r.Register(recorder{"dispatch", PhasePreUpdate, &got})
	r.Register(recorder{"clock", PhasePreUpdate, &got})
	r.Register(recorder{"input", PhaseInput, &got})

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "dispatch", "clock", "ai", "persist"}, got)
	assert.Equal(t, 5, r.Len())
}

func TestTickPhase(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(recorder{"a", PhaseUpdate, &got})
	r.Register(recorder{"b", PhasePersist, &got})

	r.TickPhase(PhasePersist, 0)
	assert.Equal(t, []string{"b"}, got)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "post_update", PhasePostUpdate.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
