package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmunch/server/internal/core/event"
	"github.com/gridmunch/server/internal/grid"
	"github.com/gridmunch/server/internal/maze"
)

const testMazeYAML = `mazes:
  - name: tiny
    player_spawn: {col: 3, row: 3}
    door: {col: 3, row: 4}
    house: {col: 3, row: 5}
    ghosts:
      - {name: shadow, spawn: {col: 3, row: 5}, scatter: {col: 6, row: 0}, dir: up}
    rows:
      - "#######"
      - "#..o..#"
      - "#.###.#"
      - "T.. ..T"
      - "#.#=#.#"
      - "#.#H#.#"
      - "#######"
`

func loadTestMaze(t *testing.T) *maze.Maze {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze_list.yaml")
	if err := os.WriteFile(path, []byte(testMazeYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tbl, err := maze.LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	return tbl.First()
}

func newTestPlayer(t *testing.T) (*Player, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	return New(loadTestMaze(t), bus, 80), bus
}

func tick(p *Player, n int) {
	for i := 0; i < n; i++ {
		p.Update()
	}
}

func drainDots(bus *event.Bus) (dots []event.DotEaten, pills []event.PowerPillEaten) {
	event.Subscribe(bus, func(ev event.DotEaten) { dots = append(dots, ev) })
	event.Subscribe(bus, func(ev event.PowerPillEaten) { pills = append(pills, ev) })
	bus.SwapBuffers()
	bus.DispatchAll()
	return dots, pills
}

func TestEatingPublishesDotEvents(t *testing.T) {
	p, bus := newTestPlayer(t)
	before := p.mz.DotsRemaining()

	p.SetDesiredDir(grid.Right)
	tick(p, 10) // crosses into {4,3}, a dot cell

	dots, pills := drainDots(bus)
	if len(dots) != 1 || len(pills) != 0 {
		t.Fatalf("events = %d dots, %d pills, want 1 dot", len(dots), len(pills))
	}
	if dots[0].Cell != (grid.Cell{Col: 4, Row: 3}) {
		t.Errorf("DotEaten.Cell = %+v, want {4 3}", dots[0].Cell)
	}
	if dots[0].Remaining != before-1 {
		t.Errorf("Remaining = %d, want %d", dots[0].Remaining, before-1)
	}
	if p.mz.DotsRemaining() != before-1 {
		t.Errorf("maze remaining = %d, want %d", p.mz.DotsRemaining(), before-1)
	}
}

func TestEatingPublishesPillEvent(t *testing.T) {
	p, bus := newTestPlayer(t)
	p.Tile().SetPosition(grid.Cell{Col: 4, Row: 1}.PixelCenter())
	p.SetDesiredDir(grid.Left)
	tick(p, 10) // eats the dot under it, then the pill at {3,1}

	dots, pills := drainDots(bus)
	if len(pills) != 1 {
		t.Fatalf("pills = %d, want 1 (got %d dots)", len(pills), len(dots))
	}
	if pills[0].Cell != (grid.Cell{Col: 3, Row: 1}) {
		t.Errorf("PowerPillEaten.Cell = %+v, want {3 1}", pills[0].Cell)
	}
}

func TestBufferedTurnTakenAtOpenCorner(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.SetDesiredDir(grid.Right)
	tick(p, 2)
	// Buffer the turn well before the corner at {5,3} opens upward.
	p.SetDesiredDir(grid.Up)
	tick(p, 40)

	if p.Dir() != grid.Up {
		t.Errorf("Dir = %v, want up after the corner", p.Dir())
	}
	if got := p.Cell(); got != (grid.Cell{Col: 5, Row: 2}) && got != (grid.Cell{Col: 5, Row: 1}) {
		t.Errorf("Cell = %+v, want in the column above the corner", got)
	}
}

func TestWallAndDoorBlockMovement(t *testing.T) {
	p, _ := newTestPlayer(t)
	start := p.Tile().Position()

	p.SetDesiredDir(grid.Up) // wall above spawn
	tick(p, 5)
	if p.Tile().Position() != start {
		t.Fatalf("moved into a wall: %+v", p.Tile().Position())
	}

	p.SetDesiredDir(grid.Down) // house door below spawn
	tick(p, 5)
	if p.Tile().Position() != start {
		t.Errorf("moved into the door: %+v", p.Tile().Position())
	}
}

func TestTunnelWrapsAround(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.SetDesiredDir(grid.Left)
	tick(p, 30)

	if got := p.Cell(); got.Col != 6 || got.Row != 3 {
		t.Errorf("Cell = %+v, want wrapped to {6 3}", got)
	}
}

func TestPausedPlayerNeitherMovesNorEats(t *testing.T) {
	p, bus := newTestPlayer(t)
	p.SetDesiredDir(grid.Right)
	p.SetMoving(false)
	start := p.Tile().Position()
	tick(p, 10)

	dots, pills := drainDots(bus)
	if len(dots) != 0 || len(pills) != 0 {
		t.Errorf("events while paused: %d dots, %d pills", len(dots), len(pills))
	}
	if p.Tile().Position() != start {
		t.Errorf("position moved while paused")
	}
}

func TestResetReturnsToSpawn(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.SetDesiredDir(grid.Left)
	tick(p, 12)
	p.Reset()

	if p.Cell() != p.mz.PlayerSpawn() {
		t.Errorf("Cell = %+v, want spawn %+v", p.Cell(), p.mz.PlayerSpawn())
	}
	if p.Dir() != grid.None {
		t.Errorf("Dir = %v, want none", p.Dir())
	}
	if !p.Moving() {
		t.Error("player must be moving after Reset")
	}
}
