package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
)

// MovementSystem integrates velocity into position. Phase 2 (Update).
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Run(_ *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	dt := delta(res)
	ecs.Each[component.Movement](q, func(_ ecs.Entity, m *component.Movement) {
		m.Pos = m.Pos.Add(m.Velocity.Mul(dt))
	})
}
