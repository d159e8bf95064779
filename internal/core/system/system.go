package system

import "fmt"

// Phase groups systems within a single tick. Systems run in phase order and,
// within a phase, in registration order.
type Phase int

const (
	PhaseInput      Phase = iota // 0: decisions (steering, firing)
	PhasePreUpdate               // 1: consume last tick's events
	PhaseUpdate                  // 2: game logic, movement
	PhasePostUpdate              // 3: collision detection, spawning
	PhaseCleanup                 // 4: expiry, bounds, stats
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Time is published by the Runner before every tick.
type Time struct {
	Delta   float64 // seconds covered by this tick
	Elapsed float64 // seconds simulated including this tick
	Tick    uint64  // index of this tick, starting at 0
}

// Halt asks the Runner to stop after the current tick.
type Halt struct {
	Reason string
}
