package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/movement"
	"github.com/oomph-ac/strafe/world"
)

// Integrator is the default movement.Dynamics. Each tick it applies gravity to the velocity, then
// sweeps the body along it, stopping the velocity component that runs into any surface it touches.
type Integrator struct {
	World world.Provider
}

// NewIntegrator returns an integrator that collides bodies against w.
func NewIntegrator(w world.Provider) *Integrator {
	return &Integrator{World: w}
}

// Integrate ...
func (i *Integrator) Integrate(body *movement.Body, gravity mgl32.Vec3, dt float32) {
	body.Velocity = body.Velocity.Add(gravity.Mul(dt))
	remaining := body.Velocity.Mul(dt)

	for iter := 0; iter < game.MaxMoveIterations; iter++ {
		direction, ok := game.Normalize(remaining)
		if !ok {
			return
		}
		distance := remaining.Len()

		start := body.Position.Sub(direction.Mul(game.SkinOffset))
		hit, ok := i.World.Sweep(start, body.HalfExtents, direction, distance+game.SkinOffset)
		if !ok {
			body.Position = body.Position.Add(remaining)
			return
		}

		moved := hit.Distance - game.SkinOffset
		if moved < 0 {
			moved = 0
		}
		body.Position = body.Position.Add(direction.Mul(moved))
		remaining = direction.Mul(distance - moved)

		if remaining.Dot(hit.Normal) < 0 {
			remaining = game.ProjectOnPlane(remaining, hit.Normal)
		}
		if body.Velocity.Dot(hit.Normal) < 0 {
			body.Velocity = game.ProjectOnPlane(body.Velocity, hit.Normal)
		}
	}
}

var _ movement.Dynamics = (*Integrator)(nil)
