package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// snapToGround keeps a walking box glued to the ground when it moves down a step or a slope. The box
// at pos is swept down by at most the step height and rests on whatever it hits; without a hit pos
// is returned as is.
func (c *Controller) snapToGround(pos mgl32.Vec3) mgl32.Vec3 {
	start := pos.Add(game.Up.Mul(game.SnapUpOffset))
	hit, ok := c.world.Sweep(start, c.state.HalfExtents, game.Down, c.cfg.StepHeight+game.SnapUpOffset)
	if !ok {
		return pos
	}
	return start.Sub(game.Up.Mul(hit.Distance))
}
