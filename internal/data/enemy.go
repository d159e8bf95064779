package data

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEnemy is returned for an enemy kind missing from the table.
var ErrUnknownEnemy = errors.New("unknown enemy kind")

// Enemy holds the base stats of an enemy kind loaded from YAML. Scripts may
// scale them per wave.
type Enemy struct {
	Kind   string  `yaml:"kind"`
	HP     int     `yaml:"hp"`
	Speed  float64 `yaml:"speed"` // arena units per second
	Size   float64 `yaml:"size"`  // collider edge length
	Points int     `yaml:"points"`
	Damage int     `yaml:"damage"`
}

type enemyListFile struct {
	Enemies []Enemy `yaml:"enemies"`
}

// EnemyTable holds every enemy kind indexed by name.
type EnemyTable struct {
	enemies map[string]Enemy
}

// Get returns the base stats for kind.
func (t *EnemyTable) Get(kind string) (Enemy, error) {
	e, ok := t.enemies[kind]
	if !ok {
		return Enemy{}, fmt.Errorf("%w: %q", ErrUnknownEnemy, kind)
	}
	return e, nil
}

// Kinds returns the enemy kinds in sorted order.
func (t *EnemyTable) Kinds() []string {
	kinds := make([]string, 0, len(t.enemies))
	for k := range t.enemies {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Count returns the number of enemy kinds.
func (t *EnemyTable) Count() int {
	return len(t.enemies)
}

// LoadEnemyTable loads enemy definitions from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy_list: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy_list: %w", err)
	}
	t := &EnemyTable{enemies: make(map[string]Enemy, len(f.Enemies))}
	for _, e := range f.Enemies {
		switch {
		case e.Kind == "":
			return nil, errors.New("enemy_list: entry without kind")
		case e.HP <= 0:
			return nil, fmt.Errorf("enemy_list: %s: hp must be positive", e.Kind)
		case e.Size <= 0:
			return nil, fmt.Errorf("enemy_list: %s: size must be positive", e.Kind)
		}
		if _, dup := t.enemies[e.Kind]; dup {
			return nil, fmt.Errorf("enemy_list: duplicate kind %s", e.Kind)
		}
		t.enemies[e.Kind] = e
	}
	return t, nil
}
