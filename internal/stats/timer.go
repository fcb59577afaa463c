package stats

import "github.com/gridmunch/server/internal/ghost"

// ModeTimer walks a level's scatter/chase schedule. It only resolves
// the target mode; whether a ghost adopts it is the ghost's decision.
type ModeTimer struct {
	phases []Phase
	idx    int
	left   int
}

// NewModeTimer starts the schedule at its first phase.
func NewModeTimer(phases []Phase) *ModeTimer {
	t := &ModeTimer{phases: phases}
	if len(phases) > 0 {
		t.left = phases[0].Ticks
	}
	return t
}

// Mode returns the currently resolved scatter/chase mode.
func (t *ModeTimer) Mode() ghost.Mode {
	if len(t.phases) == 0 {
		return ghost.ModeChase
	}
	return t.phases[t.idx].Mode
}

// Tick advances the schedule by one simulation tick. A phase with a
// non-positive tick count is terminal and holds forever.
func (t *ModeTimer) Tick() {
	if t.idx >= len(t.phases)-1 {
		return
	}
	if t.phases[t.idx].Ticks <= 0 {
		return
	}
	t.left--
	if t.left <= 0 {
		t.idx++
		t.left = t.phases[t.idx].Ticks
	}
}
