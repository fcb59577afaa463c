package game

// houseDoor meters ghosts out of the house. Each ghost is released
// once enough dots have been eaten; a force-release timer keeps the
// house draining even when the player stops eating.
type houseDoor struct {
	limits map[string]int // dots required per ghost

	dots          int
	ticksSinceDot int
}

// forceReleaseTicks releases the next ghost when the player has not
// eaten for this long.
const forceReleaseTicks = 240

// dotLimits in spawn order: the first two ghosts leave immediately,
// the rest wait on the dot counter.
var dotLimits = []int{0, 0, 30, 60}

func newHouseDoor(names []string) *houseDoor {
	d := &houseDoor{limits: make(map[string]int, len(names))}
	for i, name := range names {
		limit := dotLimits[len(dotLimits)-1]
		if i < len(dotLimits) {
			limit = dotLimits[i]
		}
		d.limits[name] = limit
	}
	return d
}

func (d *houseDoor) Tick()  { d.ticksSinceDot++ }
func (d *houseDoor) OnDot() { d.dots++; d.ticksSinceDot = 0 }

func (d *houseDoor) Reset() {
	d.dots = 0
	d.ticksSinceDot = 0
}

// CanLeave reports whether the named ghost may cross the door.
func (d *houseDoor) CanLeave(name string) bool {
	limit, ok := d.limits[name]
	if !ok {
		return true
	}
	return d.dots >= limit || d.ticksSinceDot >= forceReleaseTicks
}
