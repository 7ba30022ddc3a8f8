package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/simcore/internal/core/event"
	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/persist"
	"github.com/l1jgo/simcore/internal/world"
)

// SnapshotStore saves player snapshots; *persist.ProgressionRepo implements it.
type SnapshotStore interface {
	Save(ctx context.Context, s world.Snapshot) error
}

// ExpLedger appends experience awards; *persist.ExpLogRepo implements it.
type ExpLedger interface {
	Append(ctx context.Context, entries []persist.ExpEntry) error
}

// saveBatch is handed to the writer goroutine. It shares nothing with the
// game loop.
type saveBatch struct {
	snap *world.Snapshot
	exp  []persist.ExpEntry
}

// PersistenceSystem periodically auto-saves the player when dirty and
// flushes the experience ledger. Phase 5 (Persist).
//
// The game loop only builds immutable batches; Run performs the IO on its own
// goroutine.
type PersistenceSystem struct {
	world    *world.State
	store    SnapshotStore
	ledger   ExpLedger
	log      *zap.Logger
	interval time.Duration
	acc      time.Duration
	force    bool
	pending  []persist.ExpEntry
	batches  chan saveBatch
	closed   bool
	dropped  int
}

func NewPersistenceSystem(ws *world.State, bus *event.Bus, store SnapshotStore, ledger ExpLedger, log *zap.Logger, interval time.Duration) *PersistenceSystem {
	s := &PersistenceSystem{
		world:    ws,
		store:    store,
		ledger:   ledger,
		log:      log,
		interval: interval,
		batches:  make(chan saveBatch, 4),
	}
	event.Subscribe(bus, s.onExperience)
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(dt time.Duration) {
	if s.force {
		s.force = false
		s.acc = 0
		s.enqueue(false)
		return
	}
	s.acc += dt
	if s.acc < s.interval {
		return
	}
	s.acc = 0
	s.enqueue(true)
}

// RequestSave makes the next Update queue the player regardless of the dirty
// flag or the interval. On shutdown it is followed by a Persist-phase tick.
func (s *PersistenceSystem) RequestSave() {
	s.force = true
}

// Close stops accepting batches; Run returns once the queue is drained.
func (s *PersistenceSystem) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.batches)
}

func (s *PersistenceSystem) onExperience(e event.ExperienceGained) {
	p := s.world.Player
	if p == nil || p.ID() != e.Player {
		return
	}
	s.pending = append(s.pending, persist.ExpEntry{
		Character: p.Name,
		Amount:    e.Amount,
		TotalExp:  e.Total,
		Level:     p.Level(),
	})
}

func (s *PersistenceSystem) enqueue(dirtyOnly bool) {
	if s.closed {
		return
	}
	var b saveBatch
	p := s.world.Player
	if p != nil && (p.Dirty || !dirtyOnly) {
		snap := p.Snapshot()
		b.snap = &snap
	}
	b.exp = s.pending
	if b.snap == nil && len(b.exp) == 0 {
		return
	}

	if dirtyOnly {
		select {
		case s.batches <- b:
		default:
			// Writer is behind; keep the player dirty and retry next interval.
			s.dropped++
			s.log.Warn("autosave queue full, deferring", zap.Int("deferred", s.dropped))
			return
		}
	} else {
		s.batches <- b
	}
	s.pending = nil
	if p != nil && b.snap != nil {
		p.Dirty = false
	}
}

// Run writes queued batches until Close. Writes get their own timeout and
// are not cut short by ctx cancellation, so the shutdown save lands.
func (s *PersistenceSystem) Run(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	for b := range s.batches {
		s.write(base, b)
	}
	return nil
}

func (s *PersistenceSystem) write(base context.Context, b saveBatch) {
	ctx, cancel := context.WithTimeout(base, 5*time.Second)
	defer cancel()

	if b.snap != nil {
		if err := s.store.Save(ctx, *b.snap); err != nil {
			s.log.Error("autosave failed", zap.String("name", b.snap.Name), zap.Error(err))
		} else {
			s.log.Debug("autosaved", zap.String("name", b.snap.Name), zap.Int64("exp", b.snap.TotalExp))
		}
	}
	if len(b.exp) > 0 {
		if err := s.ledger.Append(ctx, b.exp); err != nil {
			s.log.Error("experience log append failed", zap.Int("entries", len(b.exp)), zap.Error(err))
		}
	}
}
