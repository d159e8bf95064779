package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"go.uber.org/zap"
)

// StatsSystem logs entity counts every N ticks. Phase 4 (Cleanup).
type StatsSystem struct {
	every uint64
	log   *zap.Logger
}

// NewStatsSystem logs every `every` ticks; zero disables it.
func NewStatsSystem(every uint64, log *zap.Logger) *StatsSystem {
	return &StatsSystem{every: every, log: log}
}

func (s *StatsSystem) Name() string { return "stats" }

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *StatsSystem) Run(_ *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	tick := currentTick(res)
	if s.every == 0 || tick%s.every != 0 {
		return
	}
	fields := []zap.Field{
		zap.Uint64("tick", tick),
		zap.Int("entities", q.Len()),
		zap.Int("enemies", ecs.Count[component.Enemy](q)),
		zap.Int("bullets", ecs.Count[component.Bullet](q)),
		zap.Int("labels", ecs.Count[component.Label](q)),
	}
	if score, ok := ecs.TryResource[component.Score](res); ok {
		fields = append(fields, zap.Int("score", score.Points))
	}
	if w, ok := ecs.TryResource[component.Waves](res); ok {
		fields = append(fields, zap.Int("wave", w.Number))
	}
	s.log.Info("world stats", fields...)
}
