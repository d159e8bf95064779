package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
)

// LifetimeSystem counts down Lifetime and destroys expired entities.
// Phase 2 (Update).
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem { return &LifetimeSystem{} }

func (s *LifetimeSystem) Name() string { return "lifetime" }

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LifetimeSystem) Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	dt := delta(res)
	ecs.Each[component.Lifetime](q, func(e ecs.Entity, l *component.Lifetime) {
		l.Remaining -= dt
		if l.Remaining <= 0 {
			cmd.Destroy(e)
		}
	})
}
