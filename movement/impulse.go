package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// ApplyImpulse records a velocity change from an external source such as an explosion. It is applied
// on the next tick; impulses received before then add up.
func (c *Controller) ApplyImpulse(impulse mgl32.Vec3) {
	s := &c.state
	s.PendingImpulse = s.PendingImpulse.Add(impulse)
	s.HasImpulse = true
}

// reconcileImpulse hands the character to Dynamics for one tick with the pending impulse added to its
// velocity. Ground handling and input are skipped and a pending jump is dropped.
func (c *Controller) reconcileImpulse() {
	s := &c.state

	vel := s.Vel
	if s.Mode == ModeGrounded {
		vel = game.Horizontal(vel)
	}
	s.SetVel(vel.Add(s.PendingImpulse))
	c.debug("impulse: %v applied, velocity now %v", s.PendingImpulse, s.Vel)

	s.PendingImpulse, s.HasImpulse = mgl32.Vec3{}, false
	s.PendingJump = false
	c.setMode(ModeImpulse)
	c.integrate()
}

var _ ImpulseReceiver = (*Controller)(nil)
