// Package maze holds the static maze geometry: walls, tunnel lanes,
// the ghost house and its door, and the consumable dot field. Layouts
// are loaded from YAML row grids.
package maze

import (
	"fmt"
	"os"

	"github.com/gridmunch/server/internal/grid"
	"gopkg.in/yaml.v3"
)

// CellKind classifies one maze cell.
type CellKind byte

const (
	KindWall CellKind = iota
	KindFloor
	KindDot
	KindPill
	KindTunnel // slow lane, wraps around the maze edge
	KindDoor   // ghost house door: only house/retreat movement may cross
	KindHouse  // ghost house interior
)

// GhostSpawn describes one ghost's fixed spawn parameters for a maze.
type GhostSpawn struct {
	Name    string
	Spawn   grid.Cell
	Scatter grid.Cell
	Dir     grid.Direction
}

// Maze is one loaded maze layout plus its mutable dot field.
type Maze struct {
	name   string
	width  int
	height int

	layout []CellKind // pristine, row-major [row*width + col]
	cells  []CellKind // current, dots/pills removed as eaten
	dots   int

	playerSpawn grid.Cell
	door        grid.Cell
	house       grid.Cell // interior cell just below the door
	ghosts      []GhostSpawn
}

func (m *Maze) Name() string              { return m.name }
func (m *Maze) WidthCells() int           { return m.width }
func (m *Maze) HeightCells() int          { return m.height }
func (m *Maze) PlayerSpawn() grid.Cell    { return m.playerSpawn }
func (m *Maze) DoorCell() grid.Cell       { return m.door }
func (m *Maze) HouseCell() grid.Cell      { return m.house }
func (m *Maze) GhostSpawns() []GhostSpawn { return m.ghosts }

// DotsRemaining returns the count of uneaten dots and pills.
func (m *Maze) DotsRemaining() int { return m.dots }

// KindAt returns the cell kind, wrapping the column horizontally.
// Rows outside the maze read as wall.
func (m *Maze) KindAt(c grid.Cell) CellKind {
	if c.Row < 0 || c.Row >= m.height {
		return KindWall
	}
	col := ((c.Col % m.width) + m.width) % m.width
	return m.cells[c.Row*m.width+col]
}

// IsWall reports whether the cell blocks all movement.
func (m *Maze) IsWall(c grid.Cell) bool { return m.KindAt(c) == KindWall }

// IsDoor reports whether the cell is the ghost house door. Ordinary
// movement treats it as a wall; house exits and retreating ghosts
// cross it.
func (m *Maze) IsDoor(c grid.Cell) bool { return m.KindAt(c) == KindDoor }

// IsTunnel reports whether the cell is a tunnel slow lane.
func (m *Maze) IsTunnel(c grid.Cell) bool { return m.KindAt(c) == KindTunnel }

// EatAt consumes the dot or pill at the cell, returning what was eaten.
// Eating an empty cell returns KindFloor, false.
func (m *Maze) EatAt(c grid.Cell) (CellKind, bool) {
	k := m.KindAt(c)
	if k != KindDot && k != KindPill {
		return KindFloor, false
	}
	col := ((c.Col % m.width) + m.width) % m.width
	m.cells[c.Row*m.width+col] = KindFloor
	m.dots--
	return k, true
}

// ResetDots restores the full dot field for a new level.
func (m *Maze) ResetDots() {
	copy(m.cells, m.layout)
	m.dots = 0
	for _, k := range m.layout {
		if k == KindDot || k == KindPill {
			m.dots++
		}
	}
}

// ── YAML loading ───────────────────────────────────────────────────

type cellSpec struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

func (c cellSpec) cell() grid.Cell { return grid.Cell{Col: c.Col, Row: c.Row} }

type ghostSpec struct {
	Name    string   `yaml:"name"`
	Spawn   cellSpec `yaml:"spawn"`
	Scatter cellSpec `yaml:"scatter"`
	Dir     string   `yaml:"dir"`
}

type mazeSpec struct {
	Name        string      `yaml:"name"`
	PlayerSpawn cellSpec    `yaml:"player_spawn"`
	Door        cellSpec    `yaml:"door"`
	House       cellSpec    `yaml:"house"`
	Ghosts      []ghostSpec `yaml:"ghosts"`
	Rows        []string    `yaml:"rows"`
}

type mazeListFile struct {
	Mazes []mazeSpec `yaml:"mazes"`
}

// Table provides maze lookups by name.
type Table struct {
	mazes map[string]*Maze
	order []string
}

// LoadTable loads all maze layouts from a maze_list.yaml file.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read maze list %s: %w", path, err)
	}
	var file mazeListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse maze list: %w", err)
	}

	t := &Table{mazes: make(map[string]*Maze, len(file.Mazes))}
	for _, spec := range file.Mazes {
		m, err := buildMaze(spec)
		if err != nil {
			return nil, fmt.Errorf("maze %q: %w", spec.Name, err)
		}
		t.mazes[m.name] = m
		t.order = append(t.order, m.name)
	}
	if len(t.order) == 0 {
		return nil, fmt.Errorf("maze list %s: no mazes defined", path)
	}
	return t, nil
}

// Count returns the number of mazes loaded.
func (t *Table) Count() int { return len(t.mazes) }

// Get returns a maze by name, or nil if not found.
func (t *Table) Get(name string) *Maze { return t.mazes[name] }

// First returns the first maze in file order.
func (t *Table) First() *Maze { return t.mazes[t.order[0]] }

// All returns every maze in file order.
func (t *Table) All() []*Maze {
	out := make([]*Maze, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.mazes[name])
	}
	return out
}

// Row legend: '#' wall, '.' dot, 'o' power pill, ' ' floor,
// 'T' tunnel lane, '=' house door, 'H' house interior.
func buildMaze(spec mazeSpec) (*Maze, error) {
	if len(spec.Rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	width := len(spec.Rows[0])
	height := len(spec.Rows)

	m := &Maze{
		name:        spec.Name,
		width:       width,
		height:      height,
		layout:      make([]CellKind, width*height),
		playerSpawn: spec.PlayerSpawn.cell(),
		door:        spec.Door.cell(),
		house:       spec.House.cell(),
	}

	for row, line := range spec.Rows {
		if len(line) != width {
			return nil, fmt.Errorf("row %d is %d cells wide, want %d", row, len(line), width)
		}
		for col, ch := range []byte(line) {
			k, err := kindOf(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			m.layout[row*width+col] = k
		}
	}

	for _, gs := range spec.Ghosts {
		dir, err := parseDir(gs.Dir)
		if err != nil {
			return nil, fmt.Errorf("ghost %q: %w", gs.Name, err)
		}
		m.ghosts = append(m.ghosts, GhostSpawn{
			Name:    gs.Name,
			Spawn:   gs.Spawn.cell(),
			Scatter: gs.Scatter.cell(),
			Dir:     dir,
		})
	}

	m.cells = make([]CellKind, len(m.layout))
	m.ResetDots()
	return m, nil
}

func kindOf(ch byte) (CellKind, error) {
	switch ch {
	case '#':
		return KindWall, nil
	case '.':
		return KindDot, nil
	case 'o':
		return KindPill, nil
	case ' ':
		return KindFloor, nil
	case 'T':
		return KindTunnel, nil
	case '=':
		return KindDoor, nil
	case 'H':
		return KindHouse, nil
	}
	return KindWall, fmt.Errorf("unknown cell %q", ch)
}

func parseDir(s string) (grid.Direction, error) {
	switch s {
	case "up":
		return grid.Up, nil
	case "down":
		return grid.Down, nil
	case "left":
		return grid.Left, nil
	case "right":
		return grid.Right, nil
	case "", "none":
		return grid.None, nil
	}
	return grid.None, fmt.Errorf("unknown direction %q", s)
}
