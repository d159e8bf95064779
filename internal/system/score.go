package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"go.uber.org/zap"
)

// ScoreSystem adds last tick's kills to the Score resource.
// Phase 1 (PreUpdate).
type ScoreSystem struct {
	log *zap.Logger
}

func NewScoreSystem(log *zap.Logger) *ScoreSystem {
	return &ScoreSystem{log: log}
}

func (s *ScoreSystem) Name() string { return "score" }

func (s *ScoreSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *ScoreSystem) Run(_ *ecs.Commands, _ ecs.Querier, res ecs.Resources, ev *event.Events) {
	killed, ok := event.Read[component.EnemiesKilled](ev)
	if !ok {
		return
	}
	score, ok := ecs.TryResource[component.Score](res)
	if !ok {
		return
	}
	if score.ByKind == nil {
		score.ByKind = make(map[string]int)
	}
	for _, k := range killed.Kills {
		score.Points += k.Points
		score.Kills++
		score.ByKind[k.Kind]++
	}
	s.log.Debug("score",
		zap.Int("killed", len(killed.Kills)),
		zap.Int("points", score.Points),
		zap.Int("kills", score.Kills),
	)
}
