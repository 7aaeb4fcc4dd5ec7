package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/settings"
)

// airAccelerate applies air control to the body velocity v. Only the horizontal part is affected.
//
// Above the air speed cap, input that does not oppose the resulting velocity is ignored entirely,
// which keeps strafing from losing speed. Opposing input is allowed but the horizontal speed may not
// exceed the larger of the cap and the speed the character already had.
func airAccelerate(v, input mgl32.Vec3, cfg settings.Movement, dt float32) mgl32.Vec3 {
	desired := accelerate(v, input, cfg.AirAcceleration, dt)
	desiredXZ := game.Horizontal(desired)

	if desiredXZ.Len() > cfg.MaxAirSpeed {
		if desiredXZ.Dot(input) >= 0 {
			return v
		}
		prior := game.Vec3HzLen(v)
		if prior < cfg.MaxAirSpeed {
			prior = cfg.MaxAirSpeed
		}
		desiredXZ = game.ClampMagnitude(desiredXZ, prior)
	}
	return mgl32.Vec3{desiredXZ.X(), v.Y(), desiredXZ.Z()}
}

// airMove applies air control to the character for this tick.
func (c *Controller) airMove(move mgl32.Vec3) {
	s := &c.state
	s.SetVel(airAccelerate(s.Vel, move, c.cfg, c.dt))
}
