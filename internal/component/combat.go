package component

import "github.com/chemwar/game/internal/core/ecs"

type Health struct {
	Current int
	Max     int
}

// Alive is false once Current drops to zero.
func (h Health) Alive() bool { return h.Current > 0 }

// Lifetime removes an entity after Remaining seconds.
type Lifetime struct {
	Remaining float64
}

// Enemy marks a hostile entity. Kind refers to a row of the enemy table.
type Enemy struct {
	Kind   string
	Points int
	Damage int // applied to the player on contact
	Speed  float64
}

type Player struct {
	FireCooldown float64 // seconds until the next shot
}

type Bullet struct {
	Damage int
	Owner  ecs.Entity
}

// Label is floating text drawn at the entity position, e.g. damage numbers.
type Label struct {
	Lines  []string
	Margin int
}
