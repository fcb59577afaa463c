package grid

import "math"

// CenterTolerance is the fuzzy-centering threshold in pixels. Continuous
// motion rarely lands on an exact integer pixel, so "in center" holds
// anywhere within this distance of the cell's exact center.
const CenterTolerance = 0.75

// Tile tracks one actor's continuous sub-pixel position and the grid
// derivations that follow from it: owning cell, cell top-left, cell
// center, and the fuzzy centered predicate. A Tile is exclusively owned
// by exactly one actor. The derived attributes are always consistent
// with the last SetPosition call; SetPosition is the only mutator.
//
// Horizontal wraparound: whenever the derived column leaves
// [0, widthCells), the position is corrected by exactly one maze-width
// in pixels, keeping the vertical coordinate intact.
type Tile struct {
	widthCells int

	pos      Vec
	cell     Cell
	topLeft  Vec
	center   Vec
	centered bool

	// Adjacent tiles are reused per direction to avoid reallocation
	// every decision tick.
	adjacent map[Direction]*Tile
}

// NewTile creates a tile at the origin for a maze of the given width
// in cells.
func NewTile(widthCells int) *Tile {
	t := &Tile{widthCells: widthCells}
	t.SetPosition(Vec{})
	return t
}

// NewTileAt creates a tile positioned at the center of the given cell.
func NewTileAt(widthCells int, c Cell) *Tile {
	t := &Tile{widthCells: widthCells}
	t.SetPosition(c.PixelCenter())
	return t
}

// SetPosition sets the sub-pixel position and recomputes every derived
// attribute, applying horizontal wraparound. The bounds are exactly one
// maze-width apart, so a single correction always converges.
func (t *Tile) SetPosition(pos Vec) {
	cell := CellAt(pos.X, pos.Y)
	if t.widthCells > 0 {
		if cell.Col < 0 {
			pos.X += float64(t.widthCells * CellSize)
			cell = CellAt(pos.X, pos.Y)
		} else if cell.Col >= t.widthCells {
			pos.X -= float64(t.widthCells * CellSize)
			cell = CellAt(pos.X, pos.Y)
		}
	}

	t.pos = pos
	t.cell = cell
	t.topLeft = cell.PixelTopLeft()
	t.center = cell.PixelCenter()
	t.centered = math.Abs(pos.X-t.center.X) <= CenterTolerance &&
		math.Abs(pos.Y-t.center.Y) <= CenterTolerance
}

// Position returns the current sub-pixel position.
func (t *Tile) Position() Vec { return t.pos }

// Cell returns the owning grid cell.
func (t *Tile) Cell() Cell { return t.cell }

// CellTopLeft returns the top-left pixel coordinate of the owning cell.
func (t *Tile) CellTopLeft() Vec { return t.topLeft }

// CellCenter returns the center pixel coordinate of the owning cell.
func (t *Tile) CellCenter() Vec { return t.center }

// InCenter reports whether the position is within CenterTolerance of
// the owning cell's center. Direction decisions are only legal here.
func (t *Tile) InCenter() bool { return t.centered }

// Adjacent returns the tile exactly one cell away in the given
// direction, computed from this tile's center (not its raw position)
// and wraparound-corrected. None yields a tile at this cell's center.
// The returned tile is memoized per direction and repositioned on each
// call, so repeated calls from the same center are idempotent.
func (t *Tile) Adjacent(d Direction) *Tile {
	adj, ok := t.adjacent[d]
	if !ok {
		if t.adjacent == nil {
			t.adjacent = make(map[Direction]*Tile, 4)
		}
		adj = &Tile{widthCells: t.widthCells}
		t.adjacent[d] = adj
	}
	dx, dy := d.Delta()
	adj.SetPosition(Vec{
		X: t.center.X + float64(dx*CellSize),
		Y: t.center.Y + float64(dy*CellSize),
	})
	return adj
}
