package maze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmunch/server/internal/grid"
)

const testMazeYAML = `mazes:
  - name: tiny
    player_spawn: {col: 1, row: 5}
    door: {col: 3, row: 2}
    house: {col: 3, row: 3}
    ghosts:
      - {name: shadow, spawn: {col: 3, row: 3}, scatter: {col: 6, row: 0}, dir: left}
    rows:
      - "#######"
      - "#o...o#"
      - "#.#=#.#"
      - "T.#H#.T"
      - "#.###.#"
      - "#.....#"
      - "#######"
`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "maze_list.yaml")
	if err := os.WriteFile(path, []byte(testMazeYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	return table
}

func TestLoadTable(t *testing.T) {
	table := loadTestTable(t)
	if table.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", table.Count())
	}
	m := table.Get("tiny")
	if m == nil {
		t.Fatal("Get(tiny) = nil")
	}
	if m != table.First() {
		t.Error("First() should return the only maze")
	}
	if m.WidthCells() != 7 || m.HeightCells() != 7 {
		t.Errorf("dimensions %dx%d, want 7x7", m.WidthCells(), m.HeightCells())
	}
	if got, want := m.PlayerSpawn(), (grid.Cell{Col: 1, Row: 5}); got != want {
		t.Errorf("PlayerSpawn() = %+v, want %+v", got, want)
	}
	if len(m.GhostSpawns()) != 1 {
		t.Fatalf("GhostSpawns() len = %d, want 1", len(m.GhostSpawns()))
	}
	gs := m.GhostSpawns()[0]
	if gs.Name != "shadow" || gs.Dir != grid.Left || gs.Scatter != (grid.Cell{Col: 6, Row: 0}) {
		t.Errorf("unexpected ghost spawn %+v", gs)
	}
}

func TestMazeQueries(t *testing.T) {
	m := loadTestTable(t).First()

	tests := []struct {
		name string
		cell grid.Cell
		wall bool
		door bool
		tun  bool
	}{
		{"corner wall", grid.Cell{Col: 0, Row: 0}, true, false, false},
		{"dot floor", grid.Cell{Col: 2, Row: 1}, false, false, false},
		{"door", grid.Cell{Col: 3, Row: 2}, false, true, false},
		{"tunnel", grid.Cell{Col: 0, Row: 3}, false, false, true},
		{"above maze", grid.Cell{Col: 3, Row: -1}, true, false, false},
		{"below maze", grid.Cell{Col: 3, Row: 7}, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsWall(tt.cell); got != tt.wall {
				t.Errorf("IsWall(%+v) = %v, want %v", tt.cell, got, tt.wall)
			}
			if got := m.IsDoor(tt.cell); got != tt.door {
				t.Errorf("IsDoor(%+v) = %v, want %v", tt.cell, got, tt.door)
			}
			if got := m.IsTunnel(tt.cell); got != tt.tun {
				t.Errorf("IsTunnel(%+v) = %v, want %v", tt.cell, got, tt.tun)
			}
		})
	}

	// Horizontal wrap: col -1 reads column width-1.
	if !m.IsWall(grid.Cell{Col: -1, Row: 0}) {
		t.Error("IsWall((-1,0)) should wrap to rightmost column wall")
	}
	if !m.IsTunnel(grid.Cell{Col: 7, Row: 3}) {
		t.Error("IsTunnel((7,3)) should wrap to the left tunnel lane")
	}
}

func TestEatAtAndReset(t *testing.T) {
	m := loadTestTable(t).First()
	start := m.DotsRemaining()
	if start == 0 {
		t.Fatal("test maze has no dots")
	}

	kind, ok := m.EatAt(grid.Cell{Col: 1, Row: 1})
	if !ok || kind != KindPill {
		t.Fatalf("EatAt pill = (%v, %v), want (KindPill, true)", kind, ok)
	}
	if m.DotsRemaining() != start-1 {
		t.Errorf("DotsRemaining() = %d, want %d", m.DotsRemaining(), start-1)
	}

	// Same cell is now empty.
	if _, ok := m.EatAt(grid.Cell{Col: 1, Row: 1}); ok {
		t.Error("EatAt on eaten cell should report nothing eaten")
	}
	// Walls are not edible.
	if _, ok := m.EatAt(grid.Cell{Col: 0, Row: 0}); ok {
		t.Error("EatAt on wall should report nothing eaten")
	}

	m.ResetDots()
	if m.DotsRemaining() != start {
		t.Errorf("after ResetDots: %d, want %d", m.DotsRemaining(), start)
	}
	if m.KindAt(grid.Cell{Col: 1, Row: 1}) != KindPill {
		t.Error("ResetDots should restore the pill")
	}
}
