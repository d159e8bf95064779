package system

import (
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/chemwar/game/internal/data"
	"github.com/chemwar/game/internal/scripting"
)

// GameSystem is implemented by every per-tick system in this package.
type GameSystem interface {
	Name() string
	Phase() coresys.Phase
	Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, ev *event.Events)
}

// Register adds systems to r under their own name and phase.
func Register(r *coresys.Runner, systems ...GameSystem) {
	for _, s := range systems {
		r.Register(s.Phase(), s.Name(), s.Run)
	}
}

// EnemyScaler turns an enemy kind's base stats into the stats for a wave.
type EnemyScaler interface {
	EnemyStats(kind string, wave int, base data.Enemy) scripting.EnemyStats
}

// Steerer computes an enemy velocity toward a target.
type Steerer interface {
	Steer(ex, ey, px, py, speed float64) (vx, vy float64)
}

// delta returns the seconds covered by the current tick.
func delta(res ecs.Resources) float64 {
	t, ok := ecs.TryResource[coresys.Time](res)
	if !ok {
		return 0
	}
	return t.Delta
}

func currentTick(res ecs.Resources) uint64 {
	t, ok := ecs.TryResource[coresys.Time](res)
	if !ok {
		return 0
	}
	return t.Tick
}
