package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// clipEpsilon absorbs float error when a box rests exactly on, or slides exactly along, a surface.
const clipEpsilon = 1e-4

// plane is the half space n·x <= d with a unit normal n pointing out of the solid.
type plane struct {
	n mgl32.Vec3
	d float32
}

// boxPlanes returns the six faces of bb.
func boxPlanes(bb cube.BBox) []plane {
	min, max := bb.Min(), bb.Max()
	return []plane{
		{n: mgl32.Vec3{-1, 0, 0}, d: -min[0]},
		{n: mgl32.Vec3{1, 0, 0}, d: max[0]},
		{n: mgl32.Vec3{0, -1, 0}, d: -min[1]},
		{n: mgl32.Vec3{0, 1, 0}, d: max[1]},
		{n: mgl32.Vec3{0, 0, -1}, d: -min[2]},
		{n: mgl32.Vec3{0, 0, 1}, d: max[2]},
	}
}

// support returns how far a box with half extents h reaches along n.
func support(n, h mgl32.Vec3) float32 {
	return math32.Abs(n[0])*h[0] + math32.Abs(n[1])*h[1] + math32.Abs(n[2])*h[2]
}

// clipResult is the entry of a ray into a convex solid.
type clipResult struct {
	t      float32
	normal mgl32.Vec3
}

// clipConvex clips the ray origin+direction*t against a convex solid described by planes, each
// pushed outwards by the support of a box with half extents h. The box is therefore treated as a
// point sweeping through the Minkowski sum of the solid and the box.
//
// The ray misses when it starts inside the solid, when it only grazes a face it is parallel to, or
// when the entry lies beyond maxDistance.
func clipConvex(planes []plane, h, origin, direction mgl32.Vec3, maxDistance float32) (clipResult, bool) {
	tEnter, tExit := math32.Inf(-1), math32.Inf(1)
	var normal mgl32.Vec3
	for _, p := range planes {
		d := p.d + support(p.n, h)
		dist := p.n.Dot(origin) - d
		denom := p.n.Dot(direction)

		if math32.Abs(denom) < 1e-5 {
			if dist > -clipEpsilon {
				// Parallel to a face and outside of it, or only touching it.
				return clipResult{}, false
			}
			continue
		}
		t := -dist / denom
		if denom < 0 {
			// On an edge the face pointing up the most wins.
			if t > tEnter+clipEpsilon || (t >= tEnter-clipEpsilon && p.n.Y() > normal.Y()) {
				tEnter, normal = math32.Max(t, tEnter), p.n
			}
		} else if t < tExit {
			tExit = t
		}
		if tEnter > tExit {
			return clipResult{}, false
		}
	}
	if tEnter < -clipEpsilon || tExit <= 0 || tEnter > maxDistance {
		return clipResult{}, false
	}
	return clipResult{t: math32.Max(tEnter, 0), normal: normal}, true
}

// sweepConvex sweeps a box against the convex solid and fills in a SweepResult for the collider c.
func sweepConvex(c Collider, planes []plane, center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool) {
	res, ok := clipConvex(planes, halfExtents, center, direction, maxDistance)
	if !ok {
		return SweepResult{}, false
	}
	hitCenter := center.Add(direction.Mul(res.t))
	return SweepResult{
		Point:    contactPoint(c.Bounds(), hitCenter, halfExtents, res.normal),
		Normal:   res.normal,
		Distance: res.t,
		Collider: c,
	}, true
}

// contactPoint returns the point of the box at hitCenter that leads into the surface with the given
// normal, clamped onto the bounds of the collider.
func contactPoint(bounds cube.BBox, hitCenter, halfExtents, normal mgl32.Vec3) mgl32.Vec3 {
	p := hitCenter
	for i := 0; i < 3; i++ {
		if normal[i] > clipEpsilon {
			p[i] -= halfExtents[i]
		} else if normal[i] < -clipEpsilon {
			p[i] += halfExtents[i]
		}
	}
	min, max := bounds.Min(), bounds.Max()
	for i := 0; i < 3; i++ {
		p[i] = math32.Max(min[i], math32.Min(max[i], p[i]))
	}
	return p
}
