package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
)

// GameOverSystem turns a GameOver event into a Halt request for the runner.
// Phase 1 (PreUpdate).
type GameOverSystem struct{}

func NewGameOverSystem() *GameOverSystem { return &GameOverSystem{} }

func (s *GameOverSystem) Name() string { return "game_over" }

func (s *GameOverSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *GameOverSystem) Run(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, ev *event.Events) {
	if !event.Has[component.GameOver](ev) {
		return
	}
	cmd.SetResource(coresys.Halt{Reason: "player died"})
}
