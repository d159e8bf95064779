package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	"github.com/go-gl/mathgl/mgl64"
)

const playerSize = 16.0

// Setup returns the startup system that places the player at the arena centre
// and publishes the game resources. The first wave is released on the first
// tick.
func Setup(cfg *config.Config, run component.Run) ecs.System {
	return func(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, _ *event.Events) {
		arena := component.Arena{
			Width:  cfg.Arena.Width,
			Height: cfg.Arena.Height,
			Margin: cfg.Arena.Margin,
		}
		player := cmd.Spawn(
			component.Movement{Pos: mgl64.Vec2{arena.Width / 2, arena.Height / 2}},
			component.Collider{Tag: component.TagPlayer, Size: mgl64.Vec2{playerSize, playerSize}},
			component.Health{Current: cfg.Player.HP, Max: cfg.Player.HP},
			component.Player{},
		)
		cmd.SetResource(arena)
		cmd.SetResource(component.PlayerRef{Entity: player})
		cmd.SetResource(component.Score{})
		cmd.SetResource(component.Waves{})
		cmd.SetResource(run)
	}
}
