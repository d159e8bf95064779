package data

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WaveGroup is a batch of one enemy kind released together.
type WaveGroup struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

type Wave struct {
	Number  int         `yaml:"number"`
	Enemies []WaveGroup `yaml:"enemies"`
}

// Total returns the number of enemies in the wave.
func (w Wave) Total() int {
	n := 0
	for _, g := range w.Enemies {
		n += g.Count
	}
	return n
}

type waveListFile struct {
	Waves []Wave `yaml:"waves"`
}

// WaveTable holds the scripted waves ordered by number.
type WaveTable struct {
	waves []Wave
}

// MaxGroupCount caps a scaled group so late waves stay representable.
const MaxGroupCount = math.MaxInt32

// At returns wave n (1-based). Waves past the last defined one repeat it with
// every group count scaled by growth per extra wave, rounded up and clamped to
// [0, MaxGroupCount].
func (t *WaveTable) At(n int, growth float64) Wave {
	if len(t.waves) == 0 || n < 1 {
		return Wave{Number: n}
	}
	if n <= len(t.waves) {
		return t.waves[n-1]
	}
	last := t.waves[len(t.waves)-1]
	scale := math.Pow(growth, float64(n-len(t.waves)))
	out := Wave{Number: n, Enemies: make([]WaveGroup, len(last.Enemies))}
	for i, g := range last.Enemies {
		count := math.Ceil(float64(g.Count) * scale)
		if math.IsNaN(count) || count < 0 {
			count = 0
		}
		out.Enemies[i] = WaveGroup{Kind: g.Kind, Count: int(min(count, MaxGroupCount))}
	}
	return out
}

// Count returns the number of defined waves.
func (t *WaveTable) Count() int {
	return len(t.waves)
}

// Check verifies that every kind the waves use exists in enemies.
func (t *WaveTable) Check(enemies *EnemyTable) error {
	for _, w := range t.waves {
		for _, g := range w.Enemies {
			if _, err := enemies.Get(g.Kind); err != nil {
				return fmt.Errorf("wave %d: %w", w.Number, err)
			}
		}
	}
	return nil
}

// LoadWaveTable loads wave definitions from a YAML file. Numbers must run
// 1..n without gaps, in any order.
func LoadWaveTable(path string) (*WaveTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wave_list: %w", err)
	}
	var f waveListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse wave_list: %w", err)
	}
	sort.Slice(f.Waves, func(i, j int) bool { return f.Waves[i].Number < f.Waves[j].Number })
	for i, w := range f.Waves {
		if w.Number != i+1 {
			return nil, fmt.Errorf("wave_list: expected wave %d, got %d", i+1, w.Number)
		}
		for _, g := range w.Enemies {
			if g.Count < 0 {
				return nil, fmt.Errorf("wave_list: wave %d: negative count for %s", w.Number, g.Kind)
			}
		}
	}
	return &WaveTable{waves: f.Waves}, nil
}
