package system

import "time"

// Phase defines execution ordering within a single frame tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events, advance timers
	PhaseUpdate                  // 1: actor simulation
	PhasePostUpdate              // 2: level progress, session bookkeeping
	PhasePersist                 // 3: score flush
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
