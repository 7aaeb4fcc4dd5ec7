package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// GroundContact is the surface found under the character by the ground query.
type GroundContact struct {
	Normal    mgl32.Vec3
	Point     mgl32.Vec3
	Distance  float32
	Standable bool
}

// standable reports whether a surface with the given normal can be walked on.
func (c *Controller) standable(normal mgl32.Vec3) bool {
	return normal.Dot(game.Up) >= c.cfg.WalkableNormalY
}

// findGround sweeps a thin slab with the footprint of the character straight down from its centre
// and verifies the contact with a ray against the collider that was hit.
func (c *Controller) findGround() (GroundContact, bool) {
	s := &c.state
	tol := c.cfg.GroundedDistance
	slab := mgl32.Vec3{s.HalfExtents.X(), tol, s.HalfExtents.Z()}

	hit, ok := c.world.Sweep(s.Center(), slab, game.Down, s.HalfExtents.Y()+tol)
	if !ok {
		return GroundContact{}, false
	}
	contact := GroundContact{Normal: hit.Normal, Point: hit.Point, Distance: hit.Distance}
	if hit.Collider != nil {
		origin := hit.Point.Add(game.Up.Mul(game.GroundVerifyHeight))
		if ray, ok := hit.Collider.Raycast(origin, game.Down, game.GroundVerifyHeight+tol); ok {
			contact.Normal, contact.Point = ray.Normal, ray.Point
		} else {
			c.debug("ground: verification ray missed, keeping sweep normal %v", hit.Normal)
		}
	}
	contact.Standable = c.standable(contact.Normal)
	return contact, true
}

// classifyGround decides whether the character stands on the ground this tick and remembers the
// ground normal. It does not change the mode.
func (c *Controller) classifyGround() bool {
	s := &c.state
	wasGrounded := s.Mode == ModeGrounded

	contact, ok := c.findGround()
	if !ok {
		return false
	}
	c.debug("ground: contact %v normal %v distance %v", contact.Point, contact.Normal, contact.Distance)

	feet, tol := s.FeetY(), c.cfg.GroundedDistance
	if contact.Point.Y()-tol > feet || contact.Point.Y()+tol < feet {
		// An edge pressed into the side of the box, or a gap too small to fall into.
		return wasGrounded
	}
	if !contact.Standable {
		return false
	}
	if !wasGrounded && c.movingAwayFrom(contact.Normal) {
		return false
	}
	s.GroundNormal = contact.Normal
	return true
}

// movingAwayFrom reports whether the body velocity leaves the plane with the given normal, as it
// does right after a jump or when thrown off a ramp.
func (c *Controller) movingAwayFrom(normal mgl32.Vec3) bool {
	v := c.state.Vel
	if v.Y() < 0 || game.IsZero(v) {
		return false
	}
	if game.Angle(v, normal) >= 180-game.GroundAngleEpsilon {
		return false
	}
	projected := game.ProjectOnPlane(v, normal)
	if game.IsZero(projected) {
		// Straight off the plane.
		return true
	}
	return game.Angle(projected, v) >= game.GroundAngleEpsilon
}
