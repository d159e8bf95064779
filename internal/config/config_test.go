package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chemwar/game/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
tick_rate = "20ms"
max_ticks = 300

[arena]
width = 800.0

[logging]
format = "json"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, uint64(300), cfg.Game.MaxTicks)
	assert.Equal(t, 800.0, cfg.Arena.Width)
	assert.Equal(t, 480.0, cfg.Arena.Height, "unset keys keep their default")
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotZero(t, cfg.Game.StartTime)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "config", "game.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Chem War", cfg.Game.Name)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	_, err := config.Load(writeConfig(t, "[game\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"zero tick rate":   func(c *config.Config) { c.Game.TickRate = 0 },
		"negative width":   func(c *config.Config) { c.Arena.Width = -1 },
		"zero interval":    func(c *config.Config) { c.Spawn.Interval = 0 },
		"zero wave growth": func(c *config.Config) { c.Spawn.WaveGrowth = 0 },
		"negative growth":  func(c *config.Config) { c.Spawn.WaveGrowth = -1.25 },
		"dead player":      func(c *config.Config) { c.Player.HP = 0 },
		"db without dsn":   func(c *config.Config) { c.Database.Enabled = true; c.Database.DSN = "" },
		"bad profile mode": func(c *config.Config) { c.Profile.Mode = "trace" },
		"long secret":      func(c *config.Config) { c.Database.ScoreSecret = strings.Repeat("s", 65) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Defaults()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	assert.NoError(t, config.Defaults().Validate())
}
