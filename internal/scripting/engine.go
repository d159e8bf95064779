package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chemwar/game/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the game's tunable formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first, then the formulas that use them
	for _, sub := range []string{"core", "ai"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// EnemyStats is the per-spawn result of enemy_stats.
type EnemyStats struct {
	HP     int
	Speed  float64
	Points int
	Damage int
}

func baseStats(base data.Enemy) EnemyStats {
	return EnemyStats{HP: base.HP, Speed: base.Speed, Points: base.Points, Damage: base.Damage}
}

// EnemyStats calls Lua enemy_stats(kind, wave, base) and returns the scaled
// stats. Fields the script leaves out keep their base value; a missing
// function or a script error yields the base stats unchanged.
func (e *Engine) EnemyStats(kind string, wave int, base data.Enemy) EnemyStats {
	stats := baseStats(base)
	fn := e.vm.GetGlobal("enemy_stats")
	if fn == lua.LNil {
		e.log.Error("lua function enemy_stats not found")
		return stats
	}

	t := e.vm.NewTable()
	t.RawSetString("hp", lua.LNumber(base.HP))
	t.RawSetString("speed", lua.LNumber(base.Speed))
	t.RawSetString("points", lua.LNumber(base.Points))
	t.RawSetString("damage", lua.LNumber(base.Damage))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(kind), lua.LNumber(wave), t); err != nil {
		e.log.Error("lua enemy_stats error", zap.String("kind", kind), zap.Error(err))
		return stats
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua enemy_stats returned non-table", zap.String("kind", kind))
		return stats
	}
	if v, ok := rt.RawGetString("hp").(lua.LNumber); ok && v > 0 {
		stats.HP = int(v)
	}
	if v, ok := rt.RawGetString("speed").(lua.LNumber); ok {
		stats.Speed = float64(v)
	}
	if v, ok := rt.RawGetString("points").(lua.LNumber); ok {
		stats.Points = int(v)
	}
	if v, ok := rt.RawGetString("damage").(lua.LNumber); ok {
		stats.Damage = int(v)
	}
	return stats
}

// Steer calls Lua steer(ex, ey, px, py, speed) for the velocity of an enemy
// at (ex, ey) chasing a target at (px, py). Without a usable script the enemy
// heads straight at the target.
func (e *Engine) Steer(ex, ey, px, py, speed float64) (vx, vy float64) {
	fn := e.vm.GetGlobal("steer")
	if fn == lua.LNil {
		e.log.Error("lua function steer not found")
		return straight(ex, ey, px, py, speed)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, lua.LNumber(ex), lua.LNumber(ey), lua.LNumber(px), lua.LNumber(py), lua.LNumber(speed)); err != nil {
		e.log.Error("lua steer error", zap.Error(err))
		return straight(ex, ey, px, py, speed)
	}

	rx, ry := e.vm.Get(-2), e.vm.Get(-1)
	e.vm.Pop(2)

	x, okX := rx.(lua.LNumber)
	y, okY := ry.(lua.LNumber)
	if !okX || !okY {
		e.log.Error("lua steer returned non-numbers")
		return straight(ex, ey, px, py, speed)
	}
	return float64(x), float64(y)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
