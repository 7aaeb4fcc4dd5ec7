package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// applyFriction slows a grounded velocity down for one tick. Speeds under stopSpeed are brought to
// a full stop.
func applyFriction(v mgl32.Vec3, stopSpeed float32) mgl32.Vec3 {
	if v.Len() < stopSpeed {
		return mgl32.Vec3{}
	}
	return v.Mul(game.FrictionRetention)
}

// accelerate adds input scaled by accel over dt to v.
func accelerate(v, input mgl32.Vec3, accel, dt float32) mgl32.Vec3 {
	return v.Add(input.Mul(accel * dt))
}
