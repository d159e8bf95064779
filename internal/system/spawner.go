package system

import (
	"math/rand/v2"

	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/chemwar/game/internal/data"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// SpawnerSystem releases a wave of enemies every spawn interval. Enemies enter
// at a random point on the arena edge with stats scaled for the wave. The
// number alive never exceeds max_enemies; the rest of a wave is dropped.
// Phase 3 (PostUpdate).
type SpawnerSystem struct {
	cfg     config.SpawnConfig
	enemies *data.EnemyTable
	waves   *data.WaveTable
	scaler  EnemyScaler
	rng     *rand.Rand
	log     *zap.Logger
}

func NewSpawnerSystem(cfg config.SpawnConfig, enemies *data.EnemyTable, waves *data.WaveTable,
	scaler EnemyScaler, rng *rand.Rand, log *zap.Logger) *SpawnerSystem {
	return &SpawnerSystem{cfg: cfg, enemies: enemies, waves: waves, scaler: scaler, rng: rng, log: log}
}

func (s *SpawnerSystem) Name() string { return "spawner" }

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *SpawnerSystem) Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	w, ok := ecs.TryResource[component.Waves](res)
	if !ok {
		return
	}
	arena, ok := ecs.TryResource[component.Arena](res)
	if !ok {
		return
	}
	w.Timer -= delta(res)
	if w.Timer > 0 {
		return
	}
	w.Timer += s.cfg.Interval
	w.Number++

	wave := s.waves.At(w.Number, s.cfg.WaveGrowth)
	room := s.cfg.MaxEnemies - ecs.Count[component.Enemy](q)
	spawned := 0
	for _, g := range wave.Enemies {
		base, err := s.enemies.Get(g.Kind)
		if err != nil {
			s.log.Error("wave references unknown enemy", zap.Int("wave", w.Number), zap.Error(err))
			continue
		}
		stats := s.scaler.EnemyStats(g.Kind, w.Number, base)
		for i := 0; i < g.Count && spawned < room; i++ {
			cmd.Spawn(
				component.Movement{Pos: s.edgePoint(*arena)},
				component.Collider{Tag: component.TagEnemy, Size: mgl64.Vec2{base.Size, base.Size}},
				component.Health{Current: stats.HP, Max: stats.HP},
				component.Enemy{Kind: g.Kind, Points: stats.Points, Damage: stats.Damage, Speed: stats.Speed},
			)
			spawned++
		}
	}
	s.log.Info("wave released",
		zap.Int("wave", w.Number),
		zap.Int("spawned", spawned),
		zap.Int("dropped", wave.Total()-spawned),
	)
}

// edgePoint picks a uniformly random point on the arena border.
func (s *SpawnerSystem) edgePoint(a component.Arena) mgl64.Vec2 {
	switch s.rng.IntN(4) {
	case 0:
		return mgl64.Vec2{s.rng.Float64() * a.Width, 0}
	case 1:
		return mgl64.Vec2{s.rng.Float64() * a.Width, a.Height}
	case 2:
		return mgl64.Vec2{0, s.rng.Float64() * a.Height}
	default:
		return mgl64.Vec2{a.Width, s.rng.Float64() * a.Height}
	}
}
