package component

import (
	"time"

	"github.com/chemwar/game/internal/core/ecs"
	"github.com/google/uuid"
)

// Arena is the playfield size. Entities further than Margin outside it are
// removed.
type Arena struct {
	Width  float64
	Height float64
	Margin float64
}

// Contains reports whether (x, y) lies inside the arena grown by its margin.
func (a Arena) Contains(x, y float64) bool {
	return x >= -a.Margin && x <= a.Width+a.Margin &&
		y >= -a.Margin && y <= a.Height+a.Margin
}

type Score struct {
	Points int
	Kills  int
	ByKind map[string]int // kills per enemy kind
}

// Waves tracks the spawner: the last wave released and the seconds until
// the next one.
type Waves struct {
	Number int
	Timer  float64
}

// Run identifies the current play session.
type Run struct {
	ID      uuid.UUID
	Started time.Time
}

// PlayerRef points at the player entity.
type PlayerRef struct {
	Entity ecs.Entity
}
