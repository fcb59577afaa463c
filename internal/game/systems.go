package game

import (
	"context"
	"fmt"
	"time"

	coresys "github.com/gridmunch/server/internal/core/system"
	"github.com/gridmunch/server/internal/ghost"
	"go.uber.org/zap"
)

// RegisterSystems wires the session's systems onto the runner.
// Registration order fixes execution order within a phase.
func RegisterSystems(r *coresys.Runner, w *World) {
	r.Register(&eventSystem{w})
	r.Register(&timerSystem{w})
	r.Register(&actorSystem{w})
	r.Register(&overlaySystem{w})
	r.Register(&persistSystem{w: w})
}

// eventSystem delivers last tick's events before anything else runs.
type eventSystem struct {
	w *World
}

func (s *eventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *eventSystem) Update(time.Duration) error {
	s.w.bus.SwapBuffers()
	s.w.bus.DispatchAll()
	return nil
}

// timerSystem advances the scatter/chase schedule, the door release
// meter, and the fright window.
type timerSystem struct {
	w *World
}

func (s *timerSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *timerSystem) Update(time.Duration) error {
	w := s.w
	if w.state != StatePlaying {
		return nil
	}
	w.timer.Tick()
	w.door.Tick()
	if w.fright == nil {
		return nil
	}
	w.fright.Tick()
	if w.fright.Finished() && !w.anyFrightened() {
		// Every ghost has observed the expiry; hand fright-mode
		// wanderers back to the timer and close the window.
		for _, g := range w.ghosts {
			g.EndFright()
		}
		w.fright = nil
	}
	return nil
}

func (w *World) anyFrightened() bool {
	for _, g := range w.ghosts {
		if g.State() == ghost.StateFrightened {
			return true
		}
	}
	return false
}

// actorSystem runs one simulation step for the player and each ghost.
// A ghost error is an engine invariant violation and aborts the tick.
type actorSystem struct {
	w *World
}

func (s *actorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *actorSystem) Update(time.Duration) error {
	w := s.w
	if w.state != StatePlaying {
		return nil
	}
	w.pl.Update()
	for _, g := range w.ghosts {
		if err := g.Update(); err != nil {
			return fmt.Errorf("ghost %s: %w", g.Name(), err)
		}
	}
	return nil
}

// overlaySystem logs each ghost's steering target for the debug
// overlay.
type overlaySystem struct {
	w *World
}

func (s *overlaySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *overlaySystem) Update(time.Duration) error {
	w := s.w
	if !w.targetOverlay || w.state != StatePlaying {
		return nil
	}
	for _, g := range w.ghosts {
		target, ok := g.TargetCell()
		if !ok {
			continue
		}
		w.log.Debug("ghost target",
			zap.String("ghost", g.Name()),
			zap.String("mode", g.Mode().String()),
			zap.Int("col", target.Col),
			zap.Int("row", target.Row))
	}
	return nil
}

// persistSystem flushes the session journal in batches and records
// the final score once per game over. All failures are retried on a
// later flush; the tick never aborts on storage errors.
type persistSystem struct {
	w     *World
	ticks int
}

const flushEveryTicks = 600

func (s *persistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *persistSystem) Update(time.Duration) error {
	w := s.w
	s.ticks++
	due := s.ticks%flushEveryTicks == 0 || w.scoreDirty

	if w.events != nil && len(w.pending) > 0 && due {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := w.events.WriteBatch(ctx, w.pending)
		cancel()
		if err != nil {
			w.log.Warn("event journal flush failed", zap.Error(err))
		} else {
			w.pending = w.pending[:0]
		}
	}

	if w.scores != nil && w.scoreDirty {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		id, err := w.scores.Save(ctx, "player", w.score, int32(w.level))
		cancel()
		if err != nil {
			w.log.Warn("score save failed", zap.Error(err))
			return nil
		}
		w.scoreDirty = false
		w.log.Info("score saved", zap.Int64("id", id), zap.Int64("score", w.score))
	}
	return nil
}
