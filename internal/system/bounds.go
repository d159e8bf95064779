package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
)

// BoundsSystem removes bullets and enemies that left the arena and keeps the
// player inside it. Phase 4 (Cleanup).
type BoundsSystem struct{}

func NewBoundsSystem() *BoundsSystem { return &BoundsSystem{} }

func (s *BoundsSystem) Name() string { return "bounds" }

func (s *BoundsSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *BoundsSystem) Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	arena, ok := ecs.TryResource[component.Arena](res)
	if !ok {
		return
	}
	outside := func(e ecs.Entity) {
		m := ecs.Get[component.Movement](q, e)
		if !arena.Contains(m.Pos.X(), m.Pos.Y()) {
			cmd.Destroy(e)
		}
	}
	for _, e := range ecs.Query2[component.Movement, component.Bullet](q) {
		outside(e)
	}
	for _, e := range ecs.Query2[component.Movement, component.Enemy](q) {
		outside(e)
	}
	ecs.Each2[component.Movement, component.Player](q, func(_ ecs.Entity, m *component.Movement, _ *component.Player) {
		m.Pos[0] = clamp(m.Pos[0], 0, arena.Width)
		m.Pos[1] = clamp(m.Pos[1], 0, arena.Height)
	})
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
