// Package player implements the player actor: grid movement on the
// shared tile model, input buffering, and dot consumption. Everything
// the rest of the game learns about the player flows through the event
// bus or the read-only view the ghosts hold.
package player

import (
	"github.com/gridmunch/server/internal/core/event"
	"github.com/gridmunch/server/internal/grid"
	"github.com/gridmunch/server/internal/maze"
)

// baseSpeed is the 100% per-tick pixel speed, scaled by the level's
// player percentage. Stays below the center-detection window.
const baseSpeed = 1.25

// Player is the single player actor of a session.
type Player struct {
	mz  *maze.Maze
	bus *event.Bus

	tile     *grid.Tile
	dir      grid.Direction
	nextDir  grid.Direction
	speedPct int

	moving bool
}

// New places the player at the maze's spawn point.
func New(mz *maze.Maze, bus *event.Bus, speedPct int) *Player {
	p := &Player{
		mz:       mz,
		bus:      bus,
		tile:     grid.NewTileAt(mz.WidthCells(), mz.PlayerSpawn()),
		speedPct: speedPct,
	}
	p.Reset()
	return p
}

// Reset returns the player to the spawn point facing nowhere, moving.
func (p *Player) Reset() {
	p.tile.SetPosition(p.mz.PlayerSpawn().PixelCenter())
	p.dir = grid.None
	p.nextDir = grid.None
	p.moving = true
}

// SetDesiredDir buffers the next direction change. It is applied at
// the next tile center where that direction is open, so early input
// before a corner still takes the turn.
func (p *Player) SetDesiredDir(d grid.Direction) { p.nextDir = d }

// SetSpeedPct applies a new level's player speed percentage.
func (p *Player) SetSpeedPct(pct int) { p.speedPct = pct }

// Update runs one tick: turn at centers, advance, eat what is under
// the new cell.
func (p *Player) Update() {
	if !p.moving {
		return
	}
	p.step()
	p.eat()
}

func (p *Player) step() {
	if p.tile.InCenter() {
		if p.nextDir != grid.None && p.open(p.nextDir) {
			p.dir = p.nextDir
			p.nextDir = grid.None
		}
		if p.dir == grid.None || !p.open(p.dir) {
			return
		}
	}
	dx, dy := p.dir.Delta()
	speed := p.Speed()
	pos := p.tile.Position()
	p.tile.SetPosition(grid.Vec{
		X: pos.X + float64(dx)*speed,
		Y: pos.Y + float64(dy)*speed,
	})
}

func (p *Player) open(d grid.Direction) bool {
	c := p.tile.Adjacent(d).Cell()
	return !p.mz.IsWall(c) && !p.mz.IsDoor(c)
}

func (p *Player) eat() {
	kind, ok := p.mz.EatAt(p.tile.Cell())
	if !ok {
		return
	}
	switch kind {
	case maze.KindDot:
		event.Emit(p.bus, event.DotEaten{
			Cell:      p.tile.Cell(),
			Remaining: p.mz.DotsRemaining(),
		})
	case maze.KindPill:
		event.Emit(p.bus, event.PowerPillEaten{Cell: p.tile.Cell()})
	}
}

// Speed returns this tick's scalar speed in pixels.
func (p *Player) Speed() float64 { return baseSpeed * float64(p.speedPct) / 100 }

// Cell returns the cell the player currently occupies.
func (p *Player) Cell() grid.Cell { return p.tile.Cell() }

// Dir returns the current facing direction.
func (p *Player) Dir() grid.Direction { return p.dir }

// Tile exposes the position model for rendering.
func (p *Player) Tile() *grid.Tile { return p.tile }

// Moving reports whether the actor is animating this tick.
func (p *Player) Moving() bool { return p.moving }

// SetMoving pauses or resumes the actor.
func (p *Player) SetMoving(moving bool) { p.moving = moving }
