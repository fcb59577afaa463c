package stats

// FrightSession is one time-boxed vulnerability window opened by a
// power pill. A second pill during an open window replaces the session
// rather than extending it.
type FrightSession struct {
	left int
}

// NewFrightSession opens a window of the given tick length.
func NewFrightSession(ticks int) *FrightSession {
	return &FrightSession{left: ticks}
}

// Tick burns one tick of the window.
func (s *FrightSession) Tick() {
	if s.left > 0 {
		s.left--
	}
}

// Finished reports whether the window has closed.
func (s *FrightSession) Finished() bool { return s.left <= 0 }

// Remaining returns the ticks left; the renderer uses it to flash the
// ghosts near the end of the window.
func (s *FrightSession) Remaining() int { return s.left }
