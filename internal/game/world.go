// Package game assembles a playable session: the maze, the player,
// the ghost roster, the level schedule, and the scoring rules, all
// driven by the phased system runner. Accessed only from the game
// loop goroutine.
package game

import (
	"time"

	"github.com/gridmunch/server/internal/core/event"
	"github.com/gridmunch/server/internal/ghost"
	"github.com/gridmunch/server/internal/grid"
	"github.com/gridmunch/server/internal/maze"
	"github.com/gridmunch/server/internal/persist"
	"github.com/gridmunch/server/internal/player"
	"github.com/gridmunch/server/internal/scripting"
	"github.com/gridmunch/server/internal/stats"
	"go.uber.org/zap"
)

// Session state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

// Scoring constants. The ghost bounty doubles for every ghost eaten
// within one fright window.
const (
	dotScore   = 10
	pillScore  = 50
	ghostScore = 200
)

// Config carries the session-level knobs.
type Config struct {
	Lives         int
	Invincible    bool
	TargetOverlay bool
}

// Deps are the world's external collaborators. Engine, Scores and
// Events may be nil; the session runs without scripting or
// persistence.
type Deps struct {
	Log    *zap.Logger
	Bus    *event.Bus
	Maze   *maze.Maze
	Levels *stats.Table
	Engine *scripting.Engine
	Scores *persist.ScoreRepo
	Events *persist.EventLogRepo
}

// World is one game session.
type World struct {
	log    *zap.Logger
	bus    *event.Bus
	mz     *maze.Maze
	levels *stats.Table
	engine *scripting.Engine
	scores *persist.ScoreRepo
	events *persist.EventLogRepo

	pl     *player.Player
	ghosts []*ghost.Ghost
	shadow *ghost.Ghost

	door   *houseDoor
	timer  *stats.ModeTimer
	fright *stats.FrightSession
	props  stats.Level

	level       int
	score       int64
	lives       int
	ghostBounty int64

	state         State
	targetOverlay bool

	session    int64
	pending    []persist.EventEntry
	scoreDirty bool
}

// NewWorld builds a session on the given maze at level 1.
func NewWorld(cfg Config, deps Deps) *World {
	w := &World{
		log:           deps.Log,
		bus:           deps.Bus,
		mz:            deps.Maze,
		levels:        deps.Levels,
		engine:        deps.Engine,
		scores:        deps.Scores,
		events:        deps.Events,
		level:         1,
		lives:         cfg.Lives,
		targetOverlay: cfg.TargetOverlay,
		session:       time.Now().UnixNano(),
	}
	w.props = deps.Levels.Level(1)
	w.timer = stats.NewModeTimer(w.props.Phases)
	w.pl = player.New(deps.Maze, deps.Bus, w.props.PlayerSpeedPct)

	spawns := deps.Maze.GhostSpawns()
	names := make([]string, len(spawns))
	for i, gs := range spawns {
		names[i] = gs.Name
	}
	w.door = newHouseDoor(names)

	for _, gs := range spawns {
		g := w.buildGhost(gs)
		if cfg.Invincible {
			g.SetDebugNoKill(true)
		}
		w.ghosts = append(w.ghosts, g)
		if gs.Name == "shadow" {
			w.shadow = g
		}
	}

	event.Subscribe(deps.Bus, w.onDot)
	event.Subscribe(deps.Bus, w.onPill)
	event.Subscribe(deps.Bus, w.onGhostEaten)
	event.Subscribe(deps.Bus, w.onPlayerEaten)
	event.Subscribe(deps.Bus, w.onLevelCleared)
	return w
}

func (w *World) buildGhost(gs maze.GhostSpawn) *ghost.Ghost {
	cfg := ghost.Config{
		Name:          gs.Name,
		Spawn:         gs.Spawn,
		SpawnDir:      gs.Dir,
		ScatterCorner: gs.Scatter,
		DoorCell:      w.mz.DoorCell(),
		HouseCell:     w.mz.HouseCell(),
		ChaseTarget:   w.chaseTargetFn(gs.Name),
	}
	if gs.Name == "shadow" {
		cfg.NormalPct = w.elroyPct
	}
	return ghost.New(cfg, ghost.Deps{
		Maze:   w.mz,
		Player: w.pl,
		Stats:  statsView{w},
		Door:   w.door,
		Bus:    w.bus,
	})
}

// chaseTargetFn bridges one ghost's chase decisions to the Lua
// personality scripts. Without an engine the ghost falls back to
// direct pursuit.
func (w *World) chaseTargetFn(name string) ghost.TargetFn {
	if w.engine == nil {
		return nil
	}
	return func(g *ghost.Ghost) grid.Cell {
		dx, dy := w.pl.Dir().Delta()
		ctx := scripting.ChaseContext{
			Ghost:         name,
			GhostCol:      g.Cell().Col,
			GhostRow:      g.Cell().Row,
			PlayerCol:     w.pl.Cell().Col,
			PlayerRow:     w.pl.Cell().Row,
			PlayerDirX:    dx,
			PlayerDirY:    dy,
			ScatterCol:    g.ScatterCorner().Col,
			ScatterRow:    g.ScatterCorner().Row,
			DotsRemaining: w.mz.DotsRemaining(),
		}
		if w.shadow != nil {
			ctx.ShadowCol = w.shadow.Cell().Col
			ctx.ShadowRow = w.shadow.Cell().Row
		}
		if c, ok := w.engine.ChaseTarget(ctx); ok {
			return c
		}
		return w.pl.Cell()
	}
}

// elroyPct accelerates the shadow ghost once the dot field runs low.
func (w *World) elroyPct(*ghost.Ghost) int {
	if w.props.ElroyDots > 0 && w.mz.DotsRemaining() <= w.props.ElroyDots {
		return w.props.ElroySpeedPct
	}
	return w.props.GhostSpeedPct
}

// ── event handlers ─────────────────────────────────────────────────

func (w *World) onDot(ev event.DotEaten) {
	if w.state != StatePlaying {
		return
	}
	w.score += dotScore
	w.door.OnDot()
	w.journal("dot", "")
	if ev.Remaining == 0 {
		event.Emit(w.bus, event.LevelCleared{Level: w.level})
	}
}

func (w *World) onPill(event.PowerPillEaten) {
	if w.state != StatePlaying {
		return
	}
	w.score += pillScore
	w.door.OnDot()
	w.fright = stats.NewFrightSession(w.props.FrightTicks)
	w.ghostBounty = ghostScore
	for _, g := range w.ghosts {
		g.OnPowerPill()
	}
	w.journal("pill", "")
	if w.mz.DotsRemaining() == 0 {
		event.Emit(w.bus, event.LevelCleared{Level: w.level})
	}
}

func (w *World) onGhostEaten(ev event.GhostEaten) {
	if w.state != StatePlaying {
		return
	}
	w.score += w.ghostBounty
	w.ghostBounty *= 2
	w.journal("ghost_eaten", ev.Ghost.Name())
	w.log.Info("ghost eaten",
		zap.String("ghost", ev.Ghost.Name()),
		zap.Int64("score", w.score))
}

func (w *World) onPlayerEaten(ev event.PlayerEaten) {
	if w.state != StatePlaying {
		return
	}
	w.lives--
	w.journal("life_lost", ev.By.Name())
	w.log.Info("player eaten",
		zap.String("by", ev.By.Name()),
		zap.Int("lives", w.lives))
	if w.lives <= 0 {
		w.gameOver()
		return
	}
	w.resetActors()
}

func (w *World) onLevelCleared(event.LevelCleared) {
	if w.state != StatePlaying {
		return
	}
	w.journal("level_cleared", "")
	w.log.Info("level cleared", zap.Int("level", w.level))
	w.level++
	w.props = w.levels.Level(w.level)
	w.mz.ResetDots()
	w.timer = stats.NewModeTimer(w.props.Phases)
	w.pl.SetSpeedPct(w.props.PlayerSpeedPct)
	w.resetActors()
}

// resetActors returns every actor to its spawn and closes any open
// fright window. Dots are untouched.
func (w *World) resetActors() {
	w.pl.Reset()
	for _, g := range w.ghosts {
		g.Reset()
	}
	w.door.Reset()
	w.fright = nil
	w.ghostBounty = 0
}

func (w *World) gameOver() {
	w.state = StateGameOver
	w.pl.SetMoving(false)
	for _, g := range w.ghosts {
		g.SetMoving(false)
	}
	w.journal("game_over", "")
	w.scoreDirty = true
	w.log.Info("game over",
		zap.Int64("score", w.score),
		zap.Int("level", w.level))
}

func (w *World) journal(kind, detail string) {
	if w.events == nil {
		return
	}
	w.pending = append(w.pending, persist.EventEntry{
		Session: w.session,
		Kind:    kind,
		Level:   int32(w.level),
		Detail:  detail,
	})
}

// ── accessors ──────────────────────────────────────────────────────

func (w *World) Score() int64           { return w.score }
func (w *World) Lives() int             { return w.lives }
func (w *World) LevelNum() int          { return w.level }
func (w *World) SessionState() State    { return w.state }
func (w *World) Player() *player.Player { return w.pl }
func (w *World) Ghosts() []*ghost.Ghost { return w.ghosts }
func (w *World) FrightActive() bool     { return w.fright != nil && !w.fright.Finished() }

// SetPlayerDir feeds one input sample into the player's turn buffer.
func (w *World) SetPlayerDir(d grid.Direction) { w.pl.SetDesiredDir(d) }

// statsView adapts the world's current level row and timers to the
// read-only view the ghosts consume.
type statsView struct{ w *World }

func (v statsView) GhostSpeedPct() int    { return v.w.props.GhostSpeedPct }
func (v statsView) TunnelSpeedPct() int   { return v.w.props.TunnelSpeedPct }
func (v statsView) FrightSpeedPct() int   { return v.w.props.FrightSpeedPct }
func (v statsView) TimerMode() ghost.Mode { return v.w.timer.Mode() }

// FrightSession returns nil when no window is open. The nil check
// matters: returning a typed nil pointer would defeat the ghost's
// missing-session guard.
func (v statsView) FrightSession() ghost.Session {
	if v.w.fright == nil {
		return nil
	}
	return v.w.fright
}
