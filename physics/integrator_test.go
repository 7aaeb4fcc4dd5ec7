package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/movement"
	"github.com/oomph-ac/strafe/world"
)

const dt = float32(1) / 50

var gravity = mgl32.Vec3{0, -20, 0}

func approxEqual(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tol %v)", field, got, want, tol)
	}
}

func floorWorld() *world.World {
	w := world.New(nil)
	w.Add(world.NewBox(cube.Box(-50, -1, -50, 50, 0, 50)))
	return w
}

func TestIntegratorFreeFall(t *testing.T) {
	in := NewIntegrator(world.New(nil))
	body := &movement.Body{Position: mgl32.Vec3{0, 10, 0}, HalfExtents: mgl32.Vec3{0.5, 1, 0.5}}

	in.Integrate(body, gravity, dt)
	approxEqual(t, body.Velocity.Y(), -0.4, 1e-5, "velocity y")
	approxEqual(t, body.Position.Y(), 10-0.4*dt, 1e-5, "position y")
}

func TestIntegratorLandsOnFloor(t *testing.T) {
	in := NewIntegrator(floorWorld())
	body := &movement.Body{
		Position:    mgl32.Vec3{0, 3, 0},
		Velocity:    mgl32.Vec3{1, 0, 0},
		HalfExtents: mgl32.Vec3{0.5, 1, 0.5},
	}
	for i := 0; i < 100; i++ {
		in.Integrate(body, gravity, dt)
	}
	approxEqual(t, body.Position.Y(), 1, 1e-4, "resting height")
	approxEqual(t, body.Velocity.Y(), 0, 1e-5, "vertical velocity")
	approxEqual(t, body.Velocity.X(), 1, 1e-5, "horizontal velocity is kept")
	if body.Position.X() <= 1.9 {
		t.Fatalf("expected the body to keep sliding along x, got %v", body.Position)
	}
}

func TestIntegratorStopsAtWall(t *testing.T) {
	w := floorWorld()
	w.Add(world.NewBox(cube.Box(2, 0, -5, 3, 5, 5)))
	in := NewIntegrator(w)
	body := &movement.Body{
		Position:    mgl32.Vec3{0, 1, 0},
		Velocity:    mgl32.Vec3{10, 0, 0},
		HalfExtents: mgl32.Vec3{0.5, 1, 0.5},
	}
	for i := 0; i < 20; i++ {
		in.Integrate(body, gravity, dt)
	}
	approxEqual(t, body.Position.X(), 1.5, 1e-4, "x against the wall")
	approxEqual(t, body.Velocity.X(), 0, 1e-5, "velocity into the wall")
}
