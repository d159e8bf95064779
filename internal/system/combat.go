package system

import (
	"strconv"

	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	labelTTL   = 0.8
	labelRise  = -30.0 // y velocity of floating damage text
	labelSpace = 2
)

// CombatSystem resolves last tick's collisions. Bullets damage the first
// enemy they touch and are consumed; enemies that reach the player damage it
// and burst. Kills and player damage are published as events.
// Phase 1 (PreUpdate).
type CombatSystem struct {
	log *zap.Logger
}

func NewCombatSystem(log *zap.Logger) *CombatSystem {
	return &CombatSystem{log: log}
}

func (s *CombatSystem) Name() string { return "combat" }

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *CombatSystem) Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, ev *event.Events) {
	hits, ok := event.Read[component.Collisions](ev)
	if !ok {
		return
	}

	spent := make(map[ecs.Entity]bool) // bullets used and enemies removed this pass
	var kills []component.Kill
	damage := 0

	for _, p := range hits.Pairs {
		switch {
		case p.TagA == component.TagBullet && p.TagB == component.TagEnemy:
			kills = s.hitEnemy(cmd, q, p.A, p.B, spent, kills)
		case p.TagA == component.TagEnemy && p.TagB == component.TagBullet:
			kills = s.hitEnemy(cmd, q, p.B, p.A, spent, kills)
		case p.TagA == component.TagEnemy && p.TagB == component.TagPlayer:
			damage += s.touchPlayer(cmd, q, p.A, spent)
		case p.TagA == component.TagPlayer && p.TagB == component.TagEnemy:
			damage += s.touchPlayer(cmd, q, p.B, spent)
		}
	}

	if len(kills) > 0 {
		event.Write(ev, component.EnemiesKilled{Kills: kills})
	}
	if damage > 0 {
		s.damagePlayer(q, res, ev, damage)
	}
}

func (s *CombatSystem) hitEnemy(cmd *ecs.Commands, q ecs.Querier, bullet, enemy ecs.Entity, spent map[ecs.Entity]bool, kills []component.Kill) []component.Kill {
	if spent[bullet] || spent[enemy] || !q.Alive(bullet) || !q.Alive(enemy) {
		return kills
	}
	b := ecs.Get[component.Bullet](q, bullet)
	h, ok := ecs.TryGet[component.Health](q, enemy)
	if !ok {
		return kills
	}
	spent[bullet] = true
	cmd.Destroy(bullet)

	h.Current -= b.Damage
	pos := ecs.Get[component.Movement](q, enemy).Pos
	floatText(cmd, pos, "-"+strconv.Itoa(b.Damage))
	if h.Alive() {
		return kills
	}

	spent[enemy] = true
	cmd.Destroy(enemy)
	info := ecs.Get[component.Enemy](q, enemy)
	return append(kills, component.Kill{Entity: enemy, Kind: info.Kind, Points: info.Points})
}

func (s *CombatSystem) touchPlayer(cmd *ecs.Commands, q ecs.Querier, enemy ecs.Entity, spent map[ecs.Entity]bool) int {
	if spent[enemy] || !q.Alive(enemy) {
		return 0
	}
	spent[enemy] = true
	cmd.Destroy(enemy)
	return ecs.Get[component.Enemy](q, enemy).Damage
}

func (s *CombatSystem) damagePlayer(q ecs.Querier, res ecs.Resources, ev *event.Events, amount int) {
	ref, ok := ecs.TryResource[component.PlayerRef](res)
	if !ok {
		return
	}
	h, ok := ecs.TryGet[component.Health](q, ref.Entity)
	if !ok || !h.Alive() {
		return
	}
	h.Current -= amount
	event.Write(ev, component.PlayerDamaged{Amount: amount, Remaining: max(h.Current, 0)})
	s.log.Debug("player damaged", zap.Int("amount", amount), zap.Int("hp", h.Current))
	if !h.Alive() {
		tick := currentTick(res)
		event.Write(ev, component.GameOver{Tick: tick})
		s.log.Info("player died", zap.Uint64("tick", tick))
	}
}

// floatText spawns a short-lived label drifting up from pos.
func floatText(cmd *ecs.Commands, pos mgl64.Vec2, text string) ecs.Entity {
	return cmd.Spawn(
		component.Movement{Pos: pos, Velocity: mgl64.Vec2{0, labelRise}},
		component.Label{Lines: []string{text}, Margin: labelSpace},
		component.Lifetime{Remaining: labelTTL},
	)
}
