package event

import "github.com/gridmunch/server/internal/grid"

// GhostRef is the view of a ghost carried inside events. Kept as an
// interface so this package stays below the actor packages.
type GhostRef interface {
	Name() string
	Cell() grid.Cell
}

// DotEaten fires when the player consumes a regular dot.
type DotEaten struct {
	Cell      grid.Cell
	Remaining int
}

// PowerPillEaten fires when the player consumes a power pill. Ghosts
// react by entering their frightened state.
type PowerPillEaten struct {
	Cell grid.Cell
}

// PlayerEaten fires when a ghost in its normal state collides with the
// player.
type PlayerEaten struct {
	By GhostRef
}

// GhostEaten fires when the player collides with a frightened ghost.
type GhostEaten struct {
	Ghost GhostRef
}

// LevelCleared fires when the last dot of a level is consumed.
type LevelCleared struct {
	Level int
}
