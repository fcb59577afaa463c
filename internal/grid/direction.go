package grid

// Direction is one of the four cardinal movement directions, or None.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Opposite returns the reversed direction. None maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Delta returns the cell-unit offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Horizontal reports whether the direction moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Vertical reports whether the direction moves along the Y axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Cardinal lists the four movement directions in decision-priority order.
var Cardinal = [4]Direction{Up, Left, Down, Right}
