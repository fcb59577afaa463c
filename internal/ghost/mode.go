package ghost

// State is the vulnerability dimension of a ghost: whether it is
// dangerous to the player, vulnerable, or retreating home as eyes.
type State int

const (
	StateNormal State = iota
	StateFrightened
	StateEyes
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateFrightened:
		return "frightened"
	case StateEyes:
		return "eyes"
	}
	return "unknown"
}

// Mode is the movement dimension: which strategy governs the ghost.
type Mode int

const (
	ModeInHouse Mode = iota
	ModeUndecided
	ModeScatter
	ModeChase
	ModeFrightened
	ModeGoingToHouse
)

func (m Mode) String() string {
	switch m {
	case ModeInHouse:
		return "in_house"
	case ModeUndecided:
		return "undecided"
	case ModeScatter:
		return "scatter"
	case ModeChase:
		return "chase"
	case ModeFrightened:
		return "frightened"
	case ModeGoingToHouse:
		return "going_to_house"
	}
	return "unknown"
}

// timerDriven reports whether the mode follows the external
// scatter/chase timer. Fright, house and retreat phases are never
// interrupted by the timer.
func (m Mode) timerDriven() bool {
	return m == ModeUndecided || m == ModeScatter || m == ModeChase
}
