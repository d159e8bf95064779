package system

import (
	"github.com/chemwar/game/internal/component"
	"github.com/chemwar/game/internal/config"
	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	coresys "github.com/chemwar/game/internal/core/system"
	"github.com/go-gl/mathgl/mgl64"
)

const bulletSize = 4.0

// ShooterSystem fires a bullet from the player at the nearest enemy each time
// the cooldown runs out. With no enemy in sight the gun stays ready.
// Phase 0 (Input).
type ShooterSystem struct {
	cfg config.PlayerConfig
}

func NewShooterSystem(cfg config.PlayerConfig) *ShooterSystem {
	return &ShooterSystem{cfg: cfg}
}

func (s *ShooterSystem) Name() string { return "shooter" }

func (s *ShooterSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ShooterSystem) Run(cmd *ecs.Commands, q ecs.Querier, res ecs.Resources, _ *event.Events) {
	dt := delta(res)
	enemies := ecs.Query2[component.Movement, component.Enemy](q)
	ecs.Each2[component.Player, component.Movement](q, func(e ecs.Entity, p *component.Player, m *component.Movement) {
		if p.FireCooldown > 0 {
			p.FireCooldown -= dt
		}
		if p.FireCooldown > 0 {
			return
		}
		target, ok := nearest(q, m.Pos, enemies)
		if !ok {
			p.FireCooldown = 0
			return
		}
		dir := target.Sub(m.Pos)
		if dir.Len() == 0 {
			return
		}
		cmd.Spawn(
			component.Movement{Pos: m.Pos, Velocity: dir.Normalize().Mul(s.cfg.BulletSpeed)},
			component.Collider{Tag: component.TagBullet, Size: mgl64.Vec2{bulletSize, bulletSize}},
			component.Bullet{Damage: s.cfg.BulletDamage, Owner: e},
			component.Lifetime{Remaining: s.cfg.BulletTTL},
		)
		p.FireCooldown = s.cfg.FireCooldown
	})
}

func nearest(q ecs.Querier, from mgl64.Vec2, candidates []ecs.Entity) (mgl64.Vec2, bool) {
	var (
		best  mgl64.Vec2
		bestD = -1.0
	)
	for _, e := range candidates {
		pos := ecs.Get[component.Movement](q, e).Pos
		off := pos.Sub(from)
		d := off.Dot(off)
		if bestD < 0 || d < bestD {
			best, bestD = pos, d
		}
	}
	return best, bestD >= 0
}
