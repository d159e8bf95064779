package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionSystem finds overlapping colliders with different tags and
// publishes them as one Collisions event. Phase 3 (PostUpdate).
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem { return &CollisionSystem{} }

func (s *CollisionSystem) Name() string { return "collision" }

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

type box struct {
	e        ecs.Entity
	tag      string
	min, max mgl64.Vec2
}

func (s *CollisionSystem) Run(_ *ecs.Commands, q ecs.Querier, _ ecs.Resources, ev *event.Events) {
	entities := ecs.Query2[component.Movement, component.Collider](q)
	if len(entities) < 2 {
		return
	}
	boxes := make([]box, len(entities))
	for i, e := range entities {
		c := ecs.Get[component.Collider](q, e)
		lo, hi := c.Bounds(ecs.Get[component.Movement](q, e).Pos)
		boxes[i] = box{e: e, tag: c.Tag, min: lo, max: hi}
	}

	var pairs []component.CollisionPair
	for i := range boxes {
		a := &boxes[i]
		for j := i + 1; j < len(boxes); j++ {
			b := &boxes[j]
			if a.tag == b.tag || !component.Overlaps(a.min, a.max, b.min, b.max) {
				continue
			}
			pairs = append(pairs, component.CollisionPair{A: a.e, B: b.e, TagA: a.tag, TagB: b.tag})
		}
	}
	if len(pairs) > 0 {
		event.Write(ev, component.Collisions{Pairs: pairs})
	}
}
