package world

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

var playerHalf = mgl32.Vec3{0.5, 1, 0.5}

func approxEqual(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tol %v)", field, got, want, tol)
	}
}

func approxVec(t *testing.T, got, want mgl32.Vec3, field string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math32.Abs(got[i]-want[i]) > 1e-4 {
			t.Fatalf("%s = %v, want %v", field, got, want)
		}
	}
}

func testWorld() *World {
	w := New(nil)
	w.Add(NewBox(cube.Box(-10, -1, -10, 10, 0, 10)))
	return w
}

func TestSweepDownLandsOnFloor(t *testing.T) {
	w := testWorld()
	res, ok := w.Sweep(mgl32.Vec3{0, 2, 0}, playerHalf, mgl32.Vec3{0, -1, 0}, 5)
	if !ok {
		t.Fatalf("expected to hit the floor")
	}
	approxEqual(t, res.Distance, 1, 1e-5, "distance")
	approxVec(t, res.Normal, mgl32.Vec3{0, 1, 0}, "normal")
	approxEqual(t, res.Point.Y(), 0, 1e-5, "point y")
	if res.Collider == nil {
		t.Fatalf("expected the hit collider to be reported")
	}
}

func TestSweepMisses(t *testing.T) {
	w := testWorld()
	cases := []struct {
		name   string
		center mgl32.Vec3
		dir    mgl32.Vec3
		dist   float32
	}{
		{"sliding along the floor", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, 5},
		{"moving away from the floor", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, 5},
		{"out of range", mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, -1, 0}, 1.5},
		{"starting inside", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, -1, 0}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if res, ok := w.Sweep(c.center, playerHalf, c.dir, c.dist); ok {
				t.Fatalf("expected no hit, got %+v", res)
			}
		})
	}
}

func TestSweepWall(t *testing.T) {
	w := testWorld()
	w.Add(NewBox(cube.Box(2, 0, -5, 3, 3, 5)))

	res, ok := w.Sweep(mgl32.Vec3{0, 1, 0}, playerHalf, mgl32.Vec3{1, 0, 0}, 4)
	if !ok {
		t.Fatalf("expected to hit the wall")
	}
	approxEqual(t, res.Distance, 1.5, 1e-5, "distance")
	approxVec(t, res.Normal, mgl32.Vec3{-1, 0, 0}, "normal")
	approxEqual(t, res.Point.X(), 2, 1e-5, "point x")
}

func TestSweepPicksClosest(t *testing.T) {
	w := New(nil)
	far := w.Add(NewBox(cube.Box(5, -1, -1, 6, 1, 1)))
	w.Add(NewBox(cube.Box(3, -1, -1, 4, 1, 1)))

	res, ok := w.Sweep(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10)
	if !ok {
		t.Fatalf("expected a hit")
	}
	approxEqual(t, res.Distance, 2.5, 1e-5, "distance")

	farCollider, _ := w.Collider(far)
	if res.Collider == farCollider {
		t.Fatalf("expected the nearer box to be reported")
	}
}

func TestMoveAndRemove(t *testing.T) {
	w := New(nil)
	id := w.Add(NewBox(cube.Box(3, -1, -1, 4, 1, 1)))

	if !w.Move(id, mgl32.Vec3{2, 0, 0}) {
		t.Fatalf("expected the collider to move")
	}
	res, ok := w.Sweep(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10)
	if !ok {
		t.Fatalf("expected a hit on the moved box")
	}
	approxEqual(t, res.Distance, 4.5, 1e-5, "distance")

	if !w.Remove(id) || w.Remove(id) {
		t.Fatalf("expected the first removal only to succeed")
	}
	if _, ok := w.Sweep(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10); ok {
		t.Fatalf("expected no hit after removal")
	}
	if w.Len() != 0 {
		t.Fatalf("expected an empty world, got %d colliders", w.Len())
	}
}

func TestOverlap(t *testing.T) {
	w := testWorld()
	if w.Overlap(mgl32.Vec3{0, 1, 0}, playerHalf) {
		t.Fatalf("a box resting on the floor must not overlap it")
	}
	if !w.Overlap(mgl32.Vec3{0, 0.5, 0}, playerHalf) {
		t.Fatalf("a box sunk into the floor must overlap it")
	}
}

func TestRamp(t *testing.T) {
	w := New(nil)
	ramp := NewRamp(cube.Box(0, 0, -5, 4, 4, 5), cube.FaceEast)
	w.Add(ramp)

	s := math32.Sqrt(0.5)
	approxVec(t, ramp.SlopeNormal(), mgl32.Vec3{-s, s, 0}, "slope normal")

	ray, ok := w.Raycast(mgl32.Vec3{2, 10, 0}, mgl32.Vec3{0, -1, 0}, 20)
	if !ok {
		t.Fatalf("expected the ray to hit the slope")
	}
	approxEqual(t, ray.Distance, 8, 1e-4, "ray distance")
	approxVec(t, ray.Normal, mgl32.Vec3{-s, s, 0}, "ray normal")

	res, ok := w.Sweep(mgl32.Vec3{2, 10, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, -1, 0}, 20)
	if !ok {
		t.Fatalf("expected the box to hit the slope")
	}
	approxEqual(t, res.Distance, 7, 1e-4, "sweep distance")
	approxVec(t, res.Point, mgl32.Vec3{2.5, 2.5, 0}, "contact point")

	if !w.Overlap(mgl32.Vec3{3, 1, 0}, mgl32.Vec3{0.1, 0.1, 0.1}) {
		t.Fatalf("box under the slope must overlap")
	}
	if w.Overlap(mgl32.Vec3{1, 3, 0}, mgl32.Vec3{0.1, 0.1, 0.1}) {
		t.Fatalf("box above the slope must not overlap")
	}
}

func TestBoxRaycastEdgeFacesRay(t *testing.T) {
	b := NewBox(cube.Box(0, 0, 0, 1, 1, 1))
	res, ok := b.Raycast(mgl32.Vec3{0.99995, 2, 0.5}, mgl32.Vec3{0, -1, 0}, 3)
	if !ok {
		t.Fatalf("expected a hit on the top edge")
	}
	approxVec(t, res.Normal, mgl32.Vec3{0, 1, 0}, "normal")
	approxEqual(t, res.Distance, 1, 1e-5, "distance")
}
