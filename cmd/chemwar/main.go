package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	"github.com/chemwar/game/internal/core/ecs"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/chemwar/game/internal/data"
	"github.com/chemwar/game/internal/persist"
	"github.com/chemwar/game/internal/scripting"
	"github.com/chemwar/game/internal/system"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("CHEMWAR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	runInfo := component.Run{ID: uuid.New(), Started: time.Now()}
	printBanner(cfg.Game.Name, runInfo.ID.String())

	// 3. Static data and scripts
	printSection("資料載入")
	enemies, err := data.LoadEnemyTable(filepath.Join(cfg.Paths.Data, "enemy_list.yaml"))
	if err != nil {
		return fmt.Errorf("load enemy table: %w", err)
	}
	waves, err := data.LoadWaveTable(filepath.Join(cfg.Paths.Data, "wave_list.yaml"))
	if err != nil {
		return fmt.Errorf("load wave table: %w", err)
	}
	if err := waves.Check(enemies); err != nil {
		return fmt.Errorf("wave table: %w", err)
	}
	printStat("enemy kinds", enemies.Count())
	printStat("waves", waves.Count())

	lua, err := scripting.NewEngine(cfg.Paths.Scripts, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()
	printOK("Lua scripts loaded")
	fmt.Println()

	// 4. Optional run record database
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runs *persist.RunRepo
	if cfg.Database.Enabled {
		printSection("資料庫")
		db, err := openDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		runs = db.Runs()
		printOK("PostgreSQL connected")
		printLeaderboard(ctx, runs, []byte(cfg.Database.ScoreSecret), log)
		fmt.Println()
	}

	// 5. World and systems
	world := ecs.NewWorld(log.Named("ecs"), ecs.WithEntityCapacity(cfg.Spawn.MaxEnemies*4))
	runner := coresys.NewRunner(world, log.Named("runner"))
	runner.SetBudget(cfg.Game.SlowTick)

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	system.Install(runner, system.Deps{
		Config:  cfg,
		Enemies: enemies,
		Waves:   waves,
		Scaler:  lua,
		Steerer: lua,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Run:     runInfo,
		Log:     log,
	})

	printSection("遊戲就緒")
	printReady(fmt.Sprintf("tick %s, %d systems", cfg.Game.TickRate, len(runner.Systems())))
	fmt.Println()

	// 6. Game loop
	reason := "tick limit"
	if err := runner.Run(ctx, cfg.Game.TickRate, cfg.Game.MaxTicks); err != nil {
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("game loop: %w", err)
		}
		reason = "interrupted"
		log.Info("shutdown signal received")
	} else if h, ok := runner.Halted(); ok {
		reason = h.Reason
	}

	rec := summarize(world, cfg.Game.Name, runInfo, reason)
	log.Info("run finished",
		zap.Stringer("run", rec.ID),
		zap.String("reason", rec.Reason),
		zap.Int("score", rec.Score),
		zap.Int("kills", rec.Kills),
		zap.Int("waves", rec.Waves),
		zap.Uint64("ticks", rec.Ticks),
	)
	world.Shutdown()

	// 7. Save the run record
	if runs != nil {
		if err := saveRun(runs, []byte(cfg.Database.ScoreSecret), rec); err != nil {
			return err
		}
	}
	return nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*persist.DB, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.Open(dbCtx, cfg, log.Named("db"))
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return db, nil
}

func printLeaderboard(ctx context.Context, runs *persist.RunRepo, secret []byte, log *zap.Logger) {
	top, err := runs.Top(ctx, 5)
	if err != nil {
		log.Warn("leaderboard unavailable", zap.Error(err))
		return
	}
	for i, rec := range top {
		mark := ""
		if !persist.Verify(secret, rec) {
			mark = " (unverified)"
		}
		printStat(fmt.Sprintf("#%d %s%s", i+1, rec.StartedAt.Format("2006-01-02 15:04"), mark), rec.Score)
	}
}

// summarize reads the final score from the World. Call before Shutdown.
func summarize(w *ecs.World, game string, info component.Run, reason string) persist.RunRecord {
	rec := persist.RunRecord{
		ID:        info.ID,
		Game:      game,
		Reason:    reason,
		Ticks:     w.Tick(),
		StartedAt: info.Started,
		EndedAt:   time.Now(),
	}
	res := w.Resources()
	if s, ok := ecs.TryResource[component.Score](res); ok {
		rec.Score, rec.Kills = s.Points, s.Kills
		rec.KillsBy = make(map[string]int, len(s.ByKind))
		for k, v := range s.ByKind {
			rec.KillsBy[k] = v
		}
	}
	if wv, ok := ecs.TryResource[component.Waves](res); ok {
		rec.Waves = wv.Number
	}
	return rec
}

// saveRun seals and stores rec. It uses its own deadline since the game
// context may already be cancelled.
func saveRun(runs *persist.RunRepo, secret []byte, rec persist.RunRecord) error {
	seal, err := persist.Seal(secret, rec)
	if err != nil {
		return fmt.Errorf("seal run: %w", err)
	}
	rec.Seal = seal

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := runs.Save(ctx, rec); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
