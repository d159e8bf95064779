package main

import (
	"testing"
	"time"

	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestSummarize(t *testing.T) {
	w := ecs.NewWorld(zaptest.NewLogger(t))
	info := component.Run{ID: uuid.New(), Started: time.Now().Add(-time.Minute)}
	ecs.SetResource(w, component.Score{Points: 120, Kills: 9, ByKind: map[string]int{"slime": 9}})
	ecs.SetResource(w, component.Waves{Number: 4})
	w.Update()
	w.Update()

	rec := summarize(w, "Chem War", info, "player died")
	assert.Equal(t, info.ID, rec.ID)
	assert.Equal(t, 120, rec.Score)
	assert.Equal(t, 9, rec.Kills)
	assert.Equal(t, 4, rec.Waves)
	assert.Equal(t, uint64(2), rec.Ticks)
	assert.Equal(t, map[string]int{"slime": 9}, rec.KillsBy)
	assert.False(t, rec.EndedAt.Before(rec.StartedAt))

	// The record must not alias the World's map.
	ecs.GetResource[component.Score](w.Resources()).ByKind["slime"]++
	assert.Equal(t, 9, rec.KillsBy["slime"])
}

func TestSummarizeEmptyWorld(t *testing.T) {
	rec := summarize(ecs.NewWorld(nil), "Chem War", component.Run{}, "interrupted")
	assert.Zero(t, rec.Score)
	assert.Zero(t, rec.Waves)
	assert.Equal(t, "interrupted", rec.Reason)
}

func TestNewLoggerLevels(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = newLogger(config.LoggingConfig{Level: "nonsense", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel), "unknown level falls back to info")
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
