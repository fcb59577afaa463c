package ghost

import "github.com/gridmunch/server/internal/grid"

// The ghost engine reads from, but never owns, the collaborators below.
// They are defined here as narrow interfaces so the engine can be
// exercised against stubs.

// Maze is the static geometry view the engine needs.
type Maze interface {
	WidthCells() int
	IsWall(grid.Cell) bool
	IsDoor(grid.Cell) bool
	IsTunnel(grid.Cell) bool
}

// PlayerView exposes the player actor's position, read-only and stable
// for the duration of a ghost's tick.
type PlayerView interface {
	Cell() grid.Cell
	Dir() grid.Direction
}

// Session is an externally owned, time-boxed fright window. Polled,
// never awaited.
type Session interface {
	Finished() bool
}

// Stats supplies the current level's speed percentages, the resolved
// scatter/chase timer mode, and the active fright session (nil when no
// pill is in effect).
type Stats interface {
	GhostSpeedPct() int
	TunnelSpeedPct() int
	FrightSpeedPct() int
	TimerMode() Mode
	FrightSession() Session
}

// Door gates exit from the ghost house. Opaque session state owned by
// the game; the house mover only asks permission to leave.
type Door interface {
	CanLeave(name string) bool
}
