package scripting

import "math"

// straight returns a velocity of the given speed pointing from (ex, ey) to
// (px, py), or zero when the points coincide.
func straight(ex, ey, px, py, speed float64) (vx, vy float64) {
	dx, dy := px-ex, py-ey
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	return dx / d * speed, dy / d * speed
}
