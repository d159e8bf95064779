package system

import (
	"math/rand/v2"

	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/chemwar/game/internal/data"
	"go.uber.org/zap"
)

// Deps holds what the game systems are built from.
type Deps struct {
	Config  *config.Config
	Enemies *data.EnemyTable
	Waves   *data.WaveTable
	Scaler  EnemyScaler
	Steerer Steerer
	Rand    *rand.Rand
	Run     component.Run
	Log     *zap.Logger
}

// Install registers the startup system and every per-tick game system on r.
func Install(r *coresys.Runner, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	r.RegisterStartup("setup", Setup(d.Config, d.Run))
	Register(r,
		NewSteeringSystem(d.Steerer),
		NewShooterSystem(d.Config.Player),
		NewCombatSystem(log.Named("combat")),
		NewScoreSystem(log.Named("score")),
		NewGameOverSystem(),
		NewMovementSystem(),
		NewLifetimeSystem(),
		NewCollisionSystem(),
		NewSpawnerSystem(d.Config.Spawn, d.Enemies, d.Waves, d.Scaler, d.Rand, log.Named("spawner")),
		NewBoundsSystem(),
		NewStatsSystem(d.Config.Game.StatsEvery, log.Named("stats")),
	)
}
