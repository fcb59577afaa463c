package ghost

import "github.com/gridmunch/server/internal/grid"

// scatterMover patrols toward the ghost's fixed home corner.
type scatterMover struct {
	target grid.Cell
}

func newScatterMover() *scatterMover { return &scatterMover{} }

func (m *scatterMover) Mode() Mode            { return ModeScatter }
func (m *scatterMover) TargetCell() grid.Cell { return m.target }

func (m *scatterMover) Advance(g *Ghost) {
	m.target = g.scatter
	if g.tile.InCenter() {
		g.nextDir = g.chooseToward(m.target, false)
	}
	g.stepMove(false)
}

// chaseMover pursues a target computed by the ghost's personality.
type chaseMover struct {
	target grid.Cell
}

func newChaseMover() *chaseMover { return &chaseMover{} }

func (m *chaseMover) Mode() Mode            { return ModeChase }
func (m *chaseMover) TargetCell() grid.Cell { return m.target }

func (m *chaseMover) Advance(g *Ghost) {
	if g.chaseTarget != nil {
		m.target = g.chaseTarget(g)
	} else {
		m.target = g.player.Cell()
	}
	if g.tile.InCenter() {
		g.nextDir = g.chooseToward(m.target, false)
	}
	g.stepMove(false)
}

// frightenedMover wanders randomly, picking a fresh open direction at
// every decision point. Decisions are recorded per cell: a slow ghost
// sits inside the center window for several ticks, and re-rolling each
// of them would jitter in place. The fright reversal pre-records the
// cell it fired in so the reversed facing survives that first center.
type frightenedMover struct {
	target     grid.Cell
	decidedAt  grid.Cell
	hasDecided bool
}

func newFrightenedMover() *frightenedMover { return &frightenedMover{} }

func (m *frightenedMover) Mode() Mode            { return ModeFrightened }
func (m *frightenedMover) TargetCell() grid.Cell { return m.target }

func (m *frightenedMover) Advance(g *Ghost) {
	if cell := g.tile.Cell(); g.tile.InCenter() && !(m.hasDecided && m.decidedAt == cell) {
		d := g.chooseRandom()
		g.nextDir = d
		m.target = g.tile.Adjacent(d).Cell()
		m.decidedAt = cell
		m.hasDecided = true
	}
	g.stepMove(false)
}

// eyesMover retreats to the house interior, allowed through the door.
// Arrival hands the ghost over to the house mover.
type eyesMover struct {
	target grid.Cell
}

func newEyesMover() *eyesMover { return &eyesMover{} }

func (m *eyesMover) Mode() Mode            { return ModeGoingToHouse }
func (m *eyesMover) TargetCell() grid.Cell { return m.target }

func (m *eyesMover) Advance(g *Ghost) {
	m.target = g.houseCell
	if g.tile.Cell() == g.houseCell && g.tile.InCenter() {
		g.mode = ModeInHouse
		return
	}
	if g.tile.InCenter() {
		g.nextDir = g.chooseToward(m.target, true)
	}
	g.stepMove(true)
}

// houseMover bounces inside the ghost house until the door releases
// the ghost, then climbs out through the door column.
type houseMover struct {
	target  grid.Cell
	leaving bool
}

func newHouseMover() *houseMover { return &houseMover{} }

func (m *houseMover) Mode() Mode            { return ModeInHouse }
func (m *houseMover) TargetCell() grid.Cell { return m.target }

func (m *houseMover) Advance(g *Ghost) {
	if !m.leaving && (g.door == nil || g.door.CanLeave(g.name)) {
		m.leaving = true
	}

	if !m.leaving {
		// Idle bounce between the house walls.
		if !g.dir.Vertical() {
			g.dir = grid.Up
		}
		if g.tile.InCenter() && g.blockedCell(g.tile.Adjacent(g.dir).Cell(), false) {
			g.dir = g.dir.Opposite()
		}
		m.target = g.tile.Adjacent(g.dir).Cell()
		g.advanceRaw()
		return
	}

	// Leaving: the cell just above the door is the exit.
	exit := g.doorCell.Offset(grid.Up)
	m.target = exit
	if g.tile.Cell() == exit && g.tile.InCenter() {
		g.mode = ModeUndecided
		return
	}

	doorX := g.doorCell.PixelCenter().X
	pos := g.tile.Position()
	switch {
	case pos.X < doorX-grid.CenterTolerance:
		g.dir = grid.Right
	case pos.X > doorX+grid.CenterTolerance:
		g.dir = grid.Left
	default:
		// On the door column: snap and climb.
		g.tile.SetPosition(grid.Vec{X: doorX, Y: pos.Y})
		g.dir = grid.Up
	}
	g.advanceRaw()
}
