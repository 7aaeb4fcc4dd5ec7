package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// tryStep checks whether the character at pos can climb over whatever blocks it along direction. It
// returns how far the box can rise, at most the step height, and how far the raised box can then
// travel along direction. A zero forward distance means the step cannot be taken.
func (c *Controller) tryStep(pos, direction mgl32.Vec3, distance float32) (rise, forward float32) {
	s := &c.state

	rise = c.cfg.StepHeight + game.StepClearance
	if hit, ok := c.world.Sweep(pos, s.HalfExtents, game.Up, rise); ok {
		if hit.Distance <= game.SkinOffset {
			return 0, 0
		}
		rise = hit.Distance
	}

	raised := pos.Add(game.Up.Mul(rise))
	start := raised.Sub(direction.Mul(game.SkinOffset))
	hit, ok := c.world.Sweep(start, s.HalfExtents, direction, distance+game.SkinOffset)
	if !ok {
		return rise, distance
	}
	return rise, hit.Distance - game.SkinOffset
}
