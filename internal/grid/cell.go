package grid

import "math"

// CellSize is the pixel width/height of one maze cell.
const CellSize = 8

// Cell addresses one discrete grid square of the maze by (column, row).
// Value type; equality is value equality.
type Cell struct {
	Col int
	Row int
}

// CellAt derives the owning cell for a sub-pixel position by floor
// division by the cell size.
func CellAt(x, y float64) Cell {
	return Cell{
		Col: int(math.Floor(x / CellSize)),
		Row: int(math.Floor(y / CellSize)),
	}
}

// PixelTopLeft returns the top-left pixel coordinate of the cell.
func (c Cell) PixelTopLeft() Vec {
	return Vec{X: float64(c.Col * CellSize), Y: float64(c.Row * CellSize)}
}

// PixelCenter returns the center pixel coordinate of the cell.
func (c Cell) PixelCenter() Vec {
	tl := c.PixelTopLeft()
	return Vec{X: tl.X + CellSize/2, Y: tl.Y + CellSize/2}
}

// Offset returns the cell one step away in the given direction. None
// returns the cell unchanged.
func (c Cell) Offset(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{Col: c.Col + dx, Row: c.Row + dy}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	return absInt(c.Col-o.Col) + absInt(c.Row-o.Row)
}

// Vec is a continuous 2D pixel coordinate.
type Vec struct {
	X float64
	Y float64
}

// Add returns the vector sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
