package component

import "github.com/go-gl/mathgl/mgl64"

// Movement is an entity's position and velocity in arena units.
type Movement struct {
	Velocity mgl64.Vec2 // units per second
	Pos      mgl64.Vec2
}

// Collider is an axis-aligned box centred on Movement.Pos + Offset.
type Collider struct {
	Tag    string
	Size   mgl64.Vec2
	Offset mgl64.Vec2
}

// Collider tags.
const (
	TagPlayer = "player"
	TagEnemy  = "enemy"
	TagBullet = "bullet"
)

// Bounds returns the box corners for an entity at pos.
func (c Collider) Bounds(pos mgl64.Vec2) (lo, hi mgl64.Vec2) {
	center := pos.Add(c.Offset)
	half := c.Size.Mul(0.5)
	return center.Sub(half), center.Add(half)
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func Overlaps(aMin, aMax, bMin, bMax mgl64.Vec2) bool {
	return aMin.X() < bMax.X() && bMin.X() < aMax.X() &&
		aMin.Y() < bMax.Y() && bMin.Y() < aMax.Y()
}
