package movement

import "github.com/go-gl/mathgl/mgl32"

// Body is the part of a character Dynamics integrates while kinematic control is released.
type Body struct {
	// Position is the centre of the box.
	Position    mgl32.Vec3
	Velocity    mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Dynamics integrates a body that is not kinematically controlled: gravity, velocity and
// collision response against the world.
type Dynamics interface {
	Integrate(body *Body, gravity mgl32.Vec3, dt float32)
}

// ImpulseReceiver is implemented by anything an external source, such as an explosion, can push.
type ImpulseReceiver interface {
	ApplyImpulse(impulse mgl32.Vec3)
}
