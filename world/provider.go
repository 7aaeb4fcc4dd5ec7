package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Provider answers the geometry queries a character needs: sweeping its box through the world and
// checking whether a box overlaps anything.
type Provider interface {
	// Sweep moves a box with the given centre and half extents along direction (unit length) for at
	// most maxDistance and reports the first collider it touches. A box that starts inside a
	// collider does not hit it.
	Sweep(center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool)
	// Overlap reports whether a box with the given centre and half extents intersects any collider.
	Overlap(center, halfExtents mgl32.Vec3) bool
}

// Collider is a single piece of solid geometry.
type Collider interface {
	// Bounds returns the axis aligned box enclosing the collider.
	Bounds() cube.BBox
	// Sweep is Provider.Sweep against this collider only.
	Sweep(center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool)
	// Raycast casts a ray against this collider only. It is used to verify the normal of a contact
	// found by a sweep.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RayResult, bool)
	// Overlaps reports whether bb intersects the collider.
	Overlaps(bb cube.BBox) bool
	// Translated returns a copy of the collider moved by offset.
	Translated(offset mgl32.Vec3) Collider
}

// SweepResult is the first contact of a swept box.
type SweepResult struct {
	// Point is the contact point on the surface of the collider.
	Point mgl32.Vec3
	// Normal is the unit surface normal at the contact, facing the swept box.
	Normal mgl32.Vec3
	// Distance is how far the box travelled along the direction before touching.
	Distance float32
	// Collider is the collider that was hit.
	Collider Collider
}

// RayResult is the first contact of a ray.
type RayResult struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// BoxAt returns the bounding box with the given centre and half extents.
func BoxAt(center, halfExtents mgl32.Vec3) cube.BBox {
	min, max := center.Sub(halfExtents), center.Add(halfExtents)
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}
