// Package ghost implements the behavior engine for the pursuing
// actors: the dual vulnerability/movement state machine, the sub-pixel
// tile position model, the per-tick speed rules, and the collision and
// event-publishing contract with the rest of the game.
package ghost

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridmunch/server/internal/core/event"
	"github.com/gridmunch/server/internal/grid"
)

// Per-tick pixel speeds. baseSpeed is 100%; the level stats scale it.
// Eyes travel faster than any live ghost, house pacing is a crawl.
// Every speed stays below the 1.5 px center-detection window so a
// moving actor can never step across a cell center unnoticed.
const (
	baseSpeed  = 1.25
	houseSpeed = 0.5
	eyesSpeed  = 1.5
)

// Action is a deferred one-shot callback run the next time the tile is
// centered. The controller is passed explicitly so actions stay free
// of captured mutable state.
type Action func(*Ghost)

func noopAction(*Ghost) {}

// Config fixes one ghost's identity and spawn parameters for a session.
type Config struct {
	Name          string
	Spawn         grid.Cell
	SpawnDir      grid.Direction
	ScatterCorner grid.Cell
	DoorCell      grid.Cell
	HouseCell     grid.Cell

	// ChaseTarget is the personality hook for chase mode. Nil targets
	// the player's cell directly.
	ChaseTarget TargetFn

	// NormalPct overrides the normal-speed percentage. Nil reads the
	// level's ghost speed. The shadow ghost uses this to accelerate as
	// the dot count drops.
	NormalPct func(*Ghost) int

	RNG *rand.Rand
}

// Deps are the external collaborators, shared and read-only except for
// the event bus, which is write-only.
type Deps struct {
	Maze   Maze
	Player PlayerView
	Stats  Stats
	Door   Door
	Bus    *event.Bus
}

// Ghost is one pursuing actor: its tile, its dual state, and the single
// active mover for the current mode. One instance lives per actor per
// session; Reset restores it for a new life without reallocation.
type Ghost struct {
	name      string
	spawn     grid.Cell
	spawnDir  grid.Direction
	scatter   grid.Cell
	doorCell  grid.Cell
	houseCell grid.Cell

	chaseTarget TargetFn
	normalPct   func(*Ghost) int
	rng         *rand.Rand

	maze   Maze
	player PlayerView
	stats  Stats
	door   Door
	bus    *event.Bus

	tile     *grid.Tile
	state    State
	mode     Mode
	mover    Mover
	dir      grid.Direction
	nextDir  grid.Direction
	onCenter Action

	moving      bool
	visible     bool
	debugNoKill bool
	animTick    uint64
}

// New constructs a ghost in its initial house state.
func New(cfg Config, deps Deps) *Ghost {
	g := &Ghost{
		name:        cfg.Name,
		spawn:       cfg.Spawn,
		spawnDir:    cfg.SpawnDir,
		scatter:     cfg.ScatterCorner,
		doorCell:    cfg.DoorCell,
		houseCell:   cfg.HouseCell,
		chaseTarget: cfg.ChaseTarget,
		normalPct:   cfg.NormalPct,
		rng:         cfg.RNG,
		maze:        deps.Maze,
		player:      deps.Player,
		stats:       deps.Stats,
		door:        deps.Door,
		bus:         deps.Bus,
		tile:        grid.NewTileAt(deps.Maze.WidthCells(), cfg.Spawn),
	}
	if g.normalPct == nil {
		g.normalPct = func(g *Ghost) int { return g.stats.GhostSpeedPct() }
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(int64(len(cfg.Name))))
	}
	g.Reset()
	return g
}

// Reset restores the ghost to its initial house state for a new life
// or level: spawn position and facing, Normal state, InHouse mode, the
// deferred action cleared to no-op, moving and visible. Idempotent.
func (g *Ghost) Reset() {
	g.state = StateNormal
	g.mode = ModeInHouse
	g.mover = nil
	g.onCenter = noopAction
	g.tile.SetPosition(g.spawn.PixelCenter())
	g.dir = g.spawnDir
	g.nextDir = grid.None
	g.moving = true
	g.visible = true
}

// Update runs one simulation tick. The step order is fixed: actor
// bookkeeping, lane recentering, collision detection, the on-center
// action, mover dispatch, one motion step, fright expiry. Any returned
// error is an internal-consistency violation that aborts this ghost's
// tick.
func (g *Ghost) Update() error {
	g.animTick++

	if !g.moving {
		return nil
	}

	g.recenterLane()
	g.checkCollision()

	if g.tile.InCenter() {
		if g.onCenter == nil {
			return fmt.Errorf("%s: %w", g.name, ErrNoCenterAction)
		}
		act := g.onCenter
		g.onCenter = noopAction
		act(g)
	}

	if err := g.resolveMover(); err != nil {
		return err
	}
	if g.mover == nil {
		return fmt.Errorf("%s: %w", g.name, ErrNoActiveMover)
	}
	g.mover.Advance(g)

	if g.state == StateFrightened {
		sess := g.stats.FrightSession()
		if sess == nil {
			return fmt.Errorf("%s: %w", g.name, ErrNoFrightSession)
		}
		if sess.Finished() {
			g.state = StateNormal
		}
	}
	return nil
}

// resolveMover keeps the single dispatch table of the engine: after
// every tick the active mover matches the current mode. Timer-driven
// modes first adopt the externally resolved scatter/chase mode; the
// mover is replaced only when the resolved mode differs from the one
// it was built for.
func (g *Ghost) resolveMover() error {
	if g.mode.timerDriven() {
		if m := g.stats.TimerMode(); m == ModeScatter || m == ModeChase {
			g.mode = m
		}
	}
	if g.mover != nil && g.mover.Mode() == g.mode {
		return nil
	}
	switch g.mode {
	case ModeScatter:
		g.mover = newScatterMover()
	case ModeChase:
		g.mover = newChaseMover()
	case ModeFrightened:
		g.mover = newFrightenedMover()
	case ModeGoingToHouse:
		g.mover = newEyesMover()
	case ModeInHouse:
		// Entering the house always clears vulnerability.
		g.mover = newHouseMover()
		g.state = StateNormal
	default:
		return fmt.Errorf("%s: mode %v: %w", g.name, g.mode, ErrNoMoverForMode)
	}
	return nil
}

// OnPowerPill reacts to a power-pill pickup. Retreating eyes are
// immune. A live ghost turns frightened; if it was out hunting, a
// one-shot action is armed to reverse its facing and swap in the
// frightened mover at the next decision point.
func (g *Ghost) OnPowerPill() {
	if g.state == StateEyes {
		return
	}
	g.state = StateFrightened
	if g.mode == ModeChase || g.mode == ModeScatter {
		g.onCenter = frightReversal
	}
}

func frightReversal(g *Ghost) {
	g.dir = g.dir.Opposite()
	g.nextDir = grid.None
	g.mode = ModeFrightened
	m := newFrightenedMover()
	m.decidedAt = g.tile.Cell()
	m.hasDecided = true
	g.mover = m
}

// EndFright hands a ghost wandering in fright mode back to the
// scatter/chase timer. The session owner calls it when the fright
// window closes; the vulnerability reversion itself happens inside
// Update.
func (g *Ghost) EndFright() {
	if g.mode == ModeFrightened {
		g.mode = ModeUndecided
	}
}

// checkCollision tests exact cell equality against the player and
// publishes the outcome. A normal ghost eats the player (unless the
// debug override suppresses it); a frightened ghost is eaten and
// retreats as eyes. Eyes pass through the player.
func (g *Ghost) checkCollision() {
	if g.tile.Cell() != g.player.Cell() {
		return
	}
	switch g.state {
	case StateNormal:
		if !g.debugNoKill {
			event.Emit(g.bus, event.PlayerEaten{By: g})
		}
	case StateFrightened:
		event.Emit(g.bus, event.GhostEaten{Ghost: g})
		g.state = StateEyes
		g.mode = ModeGoingToHouse
	}
}

// Speed returns this tick's scalar speed in pixels. Evaluated fresh
// every tick, in strict priority order.
func (g *Ghost) Speed() float64 {
	switch {
	case g.mode == ModeInHouse:
		return houseSpeed
	case g.state == StateEyes:
		return eyesSpeed
	case g.state == StateFrightened:
		return baseSpeed * float64(g.stats.FrightSpeedPct()) / 100
	case g.maze.IsTunnel(g.tile.Cell()):
		return baseSpeed * float64(g.stats.TunnelSpeedPct()) / 100
	default:
		return baseSpeed * float64(g.normalPct(g)) / 100
	}
}

// recenterLane corrects small perpendicular drift toward the center
// lane while hunting, clamped to one tick's speed so the position
// never overshoots. Keeps turns aligned to the grid without snapping.
func (g *Ghost) recenterLane() {
	if g.mode != ModeScatter && g.mode != ModeChase {
		return
	}
	speed := g.Speed()
	pos := g.tile.Position()
	center := g.tile.CellCenter()
	switch {
	case g.dir.Vertical():
		pos.X = nudge(pos.X, center.X, speed)
	case g.dir.Horizontal():
		pos.Y = nudge(pos.Y, center.Y, speed)
	default:
		return
	}
	g.tile.SetPosition(pos)
}

func nudge(v, target, maxStep float64) float64 {
	diff := target - v
	if math.Abs(diff) <= maxStep {
		return target
	}
	if diff > 0 {
		return v + maxStep
	}
	return v - maxStep
}

// advanceRaw moves one tick along the facing direction with no wall
// checks. House choreography only.
func (g *Ghost) advanceRaw() {
	dx, dy := g.dir.Delta()
	speed := g.Speed()
	pos := g.tile.Position()
	g.tile.SetPosition(grid.Vec{
		X: pos.X + float64(dx)*speed,
		Y: pos.Y + float64(dy)*speed,
	})
}

// ── accessors ──────────────────────────────────────────────────────

func (g *Ghost) Name() string             { return g.name }
func (g *Ghost) Cell() grid.Cell          { return g.tile.Cell() }
func (g *Ghost) Tile() *grid.Tile         { return g.tile }
func (g *Ghost) State() State             { return g.state }
func (g *Ghost) Mode() Mode               { return g.mode }
func (g *Ghost) Dir() grid.Direction      { return g.dir }
func (g *Ghost) Player() PlayerView       { return g.player }
func (g *Ghost) ScatterCorner() grid.Cell { return g.scatter }
func (g *Ghost) Visible() bool            { return g.visible }
func (g *Ghost) Moving() bool             { return g.moving }

// SetMoving pauses or resumes the actor (cut scenes, life loss).
func (g *Ghost) SetMoving(moving bool) { g.moving = moving }

// SetDebugNoKill toggles the debug override that suppresses the
// player-eaten event on collision.
func (g *Ghost) SetDebugNoKill(on bool) { g.debugNoKill = on }

// TargetCell returns the active mover's current steering target for
// the debug overlay, and whether a mover is active.
func (g *Ghost) TargetCell() (grid.Cell, bool) {
	if g.mover == nil {
		return grid.Cell{}, false
	}
	return g.mover.TargetCell(), true
}
