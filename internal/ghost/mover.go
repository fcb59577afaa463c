package ghost

import "github.com/gridmunch/server/internal/grid"

// Mover is one movement strategy. Exactly one variant exists per
// movement mode; the ghost owns at most one at a time and replaces it
// wholesale on mode change, never mutating it in place.
type Mover interface {
	// Mode returns the mode this mover was built for.
	Mode() Mode
	// TargetCell returns the cell the strategy is currently steering
	// toward. Diagnostics only; the debug overlay draws it.
	TargetCell() grid.Cell
	// Advance runs one tick of motion, mutating the owning ghost's
	// tile and facing.
	Advance(g *Ghost)
}

// TargetFn computes a chase target for a ghost. Each ghost personality
// supplies its own; nil targets the player's cell directly.
type TargetFn func(g *Ghost) grid.Cell

// ── steering helpers shared by the movers ──────────────────────────

// chooseToward picks the best next direction from the current cell
// toward target: smallest squared distance among open neighbors, never
// reversing unless every other way is blocked. Tie-break follows
// grid.Cardinal order.
func (g *Ghost) chooseToward(target grid.Cell, allowDoor bool) grid.Direction {
	if d, ok := g.bestToward(target, allowDoor, true); ok {
		return d
	}
	if d, ok := g.bestToward(target, allowDoor, false); ok {
		return d
	}
	return g.dir
}

func (g *Ghost) bestToward(target grid.Cell, allowDoor, excludeReverse bool) (grid.Direction, bool) {
	best := grid.None
	bestDist := 1 << 30
	reverse := g.dir.Opposite()
	for _, d := range grid.Cardinal {
		if excludeReverse && d == reverse {
			continue
		}
		next := g.tile.Adjacent(d).Cell()
		if g.blockedCell(next, allowDoor) {
			continue
		}
		dist := distSq(next, target)
		if dist < bestDist {
			bestDist = dist
			best = d
		}
	}
	return best, best != grid.None
}

// chooseRandom picks a uniformly random open direction, excluding the
// reverse unless the ghost is boxed in.
func (g *Ghost) chooseRandom() grid.Direction {
	reverse := g.dir.Opposite()
	open := make([]grid.Direction, 0, 4)
	for _, d := range grid.Cardinal {
		if d == reverse {
			continue
		}
		if !g.blockedCell(g.tile.Adjacent(d).Cell(), false) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return reverse
	}
	return open[g.rng.Intn(len(open))]
}

func (g *Ghost) blockedCell(c grid.Cell, allowDoor bool) bool {
	if g.maze.IsWall(c) {
		return true
	}
	if !allowDoor && g.maze.IsDoor(c) {
		return true
	}
	return false
}

// stepMove advances the position one tick along the facing direction.
// A pending direction change is applied only at a tile center; a
// blocked cell ahead at a center holds the ghost in place.
func (g *Ghost) stepMove(allowDoor bool) {
	if g.tile.InCenter() {
		if g.nextDir != grid.None {
			g.dir = g.nextDir
			g.nextDir = grid.None
		}
		ahead := g.tile.Adjacent(g.dir).Cell()
		if g.blockedCell(ahead, allowDoor) {
			return
		}
	}
	dx, dy := g.dir.Delta()
	speed := g.Speed()
	pos := g.tile.Position()
	g.tile.SetPosition(grid.Vec{
		X: pos.X + float64(dx)*speed,
		Y: pos.Y + float64(dy)*speed,
	})
}

func distSq(a, b grid.Cell) int {
	dc := a.Col - b.Col
	dr := a.Row - b.Row
	return dc*dc + dr*dr
}
