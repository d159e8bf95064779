package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/go-gl/mathgl/mgl64"
)

// SteeringSystem points every enemy at the player. Phase 0 (Input).
type SteeringSystem struct {
	steer Steerer
}

func NewSteeringSystem(steer Steerer) *SteeringSystem {
	return &SteeringSystem{steer: steer}
}

func (s *SteeringSystem) Name() string { return "steering" }

func (s *SteeringSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *SteeringSystem) Run(_ *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	ref, ok := ecs.TryResource[component.PlayerRef](res)
	if !ok {
		return
	}
	player, ok := ecs.TryGet[component.Movement](q, ref.Entity)
	if !ok {
		return
	}
	target := player.Pos
	ecs.Each2[component.Movement, component.Enemy](q, func(_ ecs.Entity, m *component.Movement, en *component.Enemy) {
		vx, vy := s.steer.Steer(m.Pos.X(), m.Pos.Y(), target.X(), target.Y(), en.Speed)
		m.Velocity = mgl64.Vec2{vx, vy}
	})
}
