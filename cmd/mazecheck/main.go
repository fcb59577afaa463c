// mazecheck validates a data directory's maze and level tables before
// deployment: every layout must parse, every dot must be reachable
// from the player spawn, and ghost spawns must sit inside the house.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridmunch/server/internal/grid"
	"github.com/gridmunch/server/internal/maze"
	"github.com/gridmunch/server/internal/stats"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mazecheck <data-dir>")
		os.Exit(1)
	}
	dataDir := os.Args[1]

	mazes, err := maze.LoadTable(filepath.Join(dataDir, "maze_list.yaml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	levels, err := stats.LoadTable(filepath.Join(dataDir, "level_list.yaml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%d maze(s), %d level(s)\n", mazes.Count(), levels.Count())

	problems := 0
	for _, m := range mazes.All() {
		problems += checkMaze(m)
	}
	if problems > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func checkMaze(m *maze.Maze) int {
	problems := 0
	report := func(format string, args ...any) {
		problems++
		fmt.Fprintf(os.Stderr, "maze %q: "+format+"\n", append([]any{m.Name()}, args...)...)
	}

	if m.KindAt(m.DoorCell()) != maze.KindDoor {
		report("door cell %+v is not a door", m.DoorCell())
	}
	if m.KindAt(m.HouseCell()) != maze.KindHouse {
		report("house cell %+v is not house interior", m.HouseCell())
	}
	if m.IsWall(m.PlayerSpawn()) {
		report("player spawn %+v is a wall", m.PlayerSpawn())
	}
	for _, gs := range m.GhostSpawns() {
		if m.KindAt(gs.Spawn) != maze.KindHouse {
			report("ghost %s spawns outside the house at %+v", gs.Name, gs.Spawn)
		}
	}

	// Flood fill from the player spawn across player-walkable cells.
	// The door and house interior are ghost-only.
	reach := map[grid.Cell]bool{}
	frontier := []grid.Cell{m.PlayerSpawn()}
	reach[m.PlayerSpawn()] = true
	for len(frontier) > 0 {
		c := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, d := range grid.Cardinal {
			n := c.Offset(d)
			if n.Col < 0 {
				n.Col += m.WidthCells()
			} else if n.Col >= m.WidthCells() {
				n.Col -= m.WidthCells()
			}
			if reach[n] || m.IsWall(n) || m.IsDoor(n) || m.KindAt(n) == maze.KindHouse {
				continue
			}
			reach[n] = true
			frontier = append(frontier, n)
		}
	}

	dots := 0
	for row := 0; row < m.HeightCells(); row++ {
		for col := 0; col < m.WidthCells(); col++ {
			c := grid.Cell{Col: col, Row: row}
			k := m.KindAt(c)
			if k != maze.KindDot && k != maze.KindPill {
				continue
			}
			dots++
			if !reach[c] {
				report("unreachable dot at %+v", c)
			}
		}
	}
	if dots != m.DotsRemaining() {
		report("dot count mismatch: counted %d, maze reports %d", dots, m.DotsRemaining())
	}
	fmt.Printf("maze %q: %dx%d, %d dots\n", m.Name(), m.WidthCells(), m.HeightCells(), dots)
	return problems
}
