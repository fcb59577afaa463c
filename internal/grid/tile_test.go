package grid

import (
	"math"
	"testing"
)

func TestCellAtFloorDivision(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Cell
	}{
		{"origin", 0, 0, Cell{0, 0}},
		{"inside first cell", 7.9, 7.9, Cell{0, 0}},
		{"cell boundary", 8, 8, Cell{1, 1}},
		{"mid maze", 100, 52, Cell{12, 6}},
		{"negative", -0.5, 4, Cell{-1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellAt(tt.x, tt.y); got != tt.want {
				t.Errorf("CellAt(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTileDerivationsConsistent(t *testing.T) {
	tile := NewTile(28)
	tile.SetPosition(Vec{X: 100, Y: 52})

	if got, want := tile.Cell(), CellAt(100, 52); got != want {
		t.Errorf("Cell() = %+v, want direct derivation %+v", got, want)
	}
	if got, want := tile.CellTopLeft(), (Vec{X: 96, Y: 48}); got != want {
		t.Errorf("CellTopLeft() = %+v, want %+v", got, want)
	}
	if got, want := tile.CellCenter(), (Vec{X: 100, Y: 52}); got != want {
		t.Errorf("CellCenter() = %+v, want %+v", got, want)
	}
}

func TestTileWraparound(t *testing.T) {
	const width = 28 // 224 px

	tests := []struct {
		name     string
		pos      Vec
		wantCell Cell
		wantX    float64
	}{
		{"left of maze", Vec{X: -4, Y: 52}, Cell{27, 6}, 220},
		{"right of maze", Vec{X: 228, Y: 52}, Cell{0, 6}, 4},
		{"in bounds untouched", Vec{X: 100, Y: 52}, Cell{12, 6}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := NewTile(width)
			tile.SetPosition(tt.pos)
			if got := tile.Cell(); got != tt.wantCell {
				t.Errorf("Cell() = %+v, want %+v", got, tt.wantCell)
			}
			if got := tile.Position().X; got != tt.wantX {
				t.Errorf("Position().X = %v, want %v", got, tt.wantX)
			}
			if got := tile.Position().Y; got != tt.pos.Y {
				t.Errorf("Position().Y = %v, want %v (vertical must be preserved)", got, tt.pos.Y)
			}
		})
	}
}

func TestTileCenterTolerance(t *testing.T) {
	tile := NewTile(28)
	center := Cell{5, 5}.PixelCenter()

	tile.SetPosition(Vec{X: center.X + 0.74, Y: center.Y})
	if !tile.InCenter() {
		t.Errorf("position 0.74 px from center: InCenter() = false, want true")
	}
	tile.SetPosition(Vec{X: center.X + 1.0, Y: center.Y})
	if tile.InCenter() {
		t.Errorf("position 1.0 px from center: InCenter() = true, want false")
	}
	tile.SetPosition(center)
	if !tile.InCenter() {
		t.Errorf("exact center: InCenter() = false, want true")
	}
}

func TestAdjacentIdempotent(t *testing.T) {
	tile := NewTile(28)
	tile.SetPosition(Cell{10, 10}.PixelCenter())

	for _, d := range Cardinal {
		first := tile.Adjacent(d).Cell()
		second := tile.Adjacent(d).Cell()
		if first != second {
			t.Errorf("Adjacent(%v) not idempotent: %+v then %+v", d, first, second)
		}
	}
}

func TestAdjacentOffsets(t *testing.T) {
	tile := NewTile(28)
	tile.SetPosition(Cell{10, 10}.PixelCenter())

	tests := []struct {
		dir  Direction
		want Cell
	}{
		{Up, Cell{10, 9}},
		{Down, Cell{10, 11}},
		{Left, Cell{9, 10}},
		{Right, Cell{11, 10}},
		{None, Cell{10, 10}},
	}
	for _, tt := range tests {
		if got := tile.Adjacent(tt.dir).Cell(); got != tt.want {
			t.Errorf("Adjacent(%v).Cell() = %+v, want %+v", tt.dir, got, tt.want)
		}
	}
}

func TestAdjacentUsesCenterNotRawPosition(t *testing.T) {
	tile := NewTile(28)
	// Off-center within cell (10,10).
	tile.SetPosition(Vec{X: 83.2, Y: 86.9})

	got := tile.Adjacent(Right).Cell()
	if want := (Cell{11, 10}); got != want {
		t.Errorf("Adjacent(Right).Cell() = %+v, want %+v", got, want)
	}
	// The adjacent tile sits exactly on its own center.
	adj := tile.Adjacent(Right)
	if !adj.InCenter() {
		t.Errorf("adjacent tile not centered: pos %+v center %+v", adj.Position(), adj.CellCenter())
	}
}

func TestAdjacentWrapsHorizontally(t *testing.T) {
	tile := NewTile(28)
	tile.SetPosition(Cell{27, 6}.PixelCenter())
	if got, want := tile.Adjacent(Right).Cell(), (Cell{0, 6}); got != want {
		t.Errorf("Adjacent(Right) at right edge = %+v, want %+v", got, want)
	}

	tile.SetPosition(Cell{0, 6}.PixelCenter())
	if got, want := tile.Adjacent(Left).Cell(), (Cell{27, 6}); got != want {
		t.Errorf("Adjacent(Left) at left edge = %+v, want %+v", got, want)
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		d, want Direction
	}{
		{Up, Down}, {Down, Up}, {Left, Right}, {Right, Left}, {None, None},
	}
	for _, tt := range tests {
		if got := tt.d.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestCellPixelCenter(t *testing.T) {
	c := Cell{3, 2}
	want := Vec{X: 28, Y: 20}
	if got := c.PixelCenter(); math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("PixelCenter() = %+v, want %+v", got, want)
	}
}
