package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// walk moves a grounded character kinematically for one tick. The intent velocity is updated with
// friction and input, then the box is swept along it, sliding along walkable surfaces, climbing
// steps and clipping against walls, and finally snapped down onto the ground.
func (c *Controller) walk(move mgl32.Vec3) Result {
	s := &c.state
	res := Result{}

	desired := accelerate(applyFriction(game.Horizontal(s.Vel), c.cfg.StopSpeed), move, c.cfg.RunAcceleration, c.dt)
	desired = game.ClampMagnitude(desired, c.cfg.MaxRunSpeed)

	pos := s.Center()
	distance := desired.Len() * c.dt
	direction, ok := game.Normalize(desired)
	if ok {
		pos = c.slide(pos, direction, distance, &res)
	}
	pos = c.snapToGround(pos)

	s.SetPos(pos.Sub(s.CenterOffset))
	s.SetVel(desired)
	return res
}

// slide runs the move-and-slide loop from pos along direction for distance and returns the
// position reached.
func (c *Controller) slide(pos, direction mgl32.Vec3, distance float32, res *Result) mgl32.Vec3 {
	s := &c.state
	for i := 0; i < game.MaxMoveIterations && distance > 0; i++ {
		res.Iterations++

		start := pos.Sub(direction.Mul(game.SkinOffset))
		hit, ok := c.world.Sweep(start, s.HalfExtents, direction, distance+game.SkinOffset)
		if !ok {
			return pos.Add(direction.Mul(distance))
		}

		moved := hit.Distance - game.SkinOffset
		pos = pos.Add(direction.Mul(moved))
		distance -= moved
		c.debug("walk: hit %v normal %v moved %v remaining %v", hit.Point, hit.Normal, moved, distance)

		if c.standable(hit.Normal) {
			redirected, ok := game.Normalize(game.ProjectOnPlane(direction, hit.Normal))
			if !ok {
				break
			}
			direction = redirected
			continue
		}

		if rise, forward := c.tryStep(pos, direction, distance); forward > game.MinStepProgress {
			c.debug("walk: stepped up %v with %v forward", rise, forward)
			pos = pos.Add(game.Up.Mul(rise))
			res.Stepped = true
			continue
		}

		res.HitWall = true
		wallNormal := game.Horizontal(hit.Normal)
		if game.IsZero(wallNormal) {
			break
		}
		direction = game.ProjectOnPlane(direction, wallNormal)
		if game.IsZero(direction) {
			break
		}
		// The remaining distance keeps shrinking with the share of the direction the wall took away.
		distance *= direction.Len()
		direction = direction.Normalize()
	}
	return pos
}
