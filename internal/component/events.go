package component

import "github.com/chemwar/game/internal/core/ecs"

// Events carry one tick's worth of occurrences each, since a channel holds a
// single value per type.

type CollisionPair struct {
	A, B       ecs.Entity
	TagA, TagB string
}

type Collisions struct {
	Pairs []CollisionPair
}

type Kill struct {
	Entity ecs.Entity
	Kind   string
	Points int
}

type EnemiesKilled struct {
	Kills []Kill
}

type PlayerDamaged struct {
	Amount    int
	Remaining int
}

type GameOver struct {
	Tick uint64
}
