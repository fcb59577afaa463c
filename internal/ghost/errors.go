package ghost

import "errors"

// Internal-consistency failures. Each one means the state machine
// reached a combination the dispatch rules cannot serve; the tick is
// aborted rather than silently skipped.
var (
	ErrNoMoverForMode  = errors.New("ghost: no mover resolves for mode")
	ErrNoActiveMover   = errors.New("ghost: tick with no active mover")
	ErrNoCenterAction  = errors.New("ghost: tile centered with no armed on-center action")
	ErrNoFrightSession = errors.New("ghost: frightened with no active fright session")
)
