package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/assert"
	"github.com/oomph-ac/strafe/game"
)

// Ramp is a wedge filling the lower half of its bounding box, split diagonally. Its sloped face
// rises from the bottom edge opposite to Rise up to the top edge on the Rise side.
type Ramp struct {
	bb     cube.BBox
	rise   cube.Face
	planes []plane
}

// NewRamp returns a ramp occupying bb that climbs towards the horizontal face rise.
func NewRamp(bb cube.BBox, rise cube.Face) *Ramp {
	assert.IsTrue(rise != cube.FaceUp && rise != cube.FaceDown, "ramp must rise towards a horizontal face, got %v", rise)

	r := &Ramp{bb: bb, rise: rise}
	dir := FaceNormal(rise)
	min, max := bb.Min(), bb.Max()
	size := max.Sub(min)
	length := math32.Abs(dir.Dot(size))

	center := min.Add(max).Mul(0.5)
	lowEdge := center.Sub(dir.Mul(length / 2))
	lowEdge[1] = min[1]

	n, _ := game.Normalize(dir.Mul(-size[1]).Add(game.Up.Mul(length)))
	r.planes = append(boxPlanes(bb), plane{n: n, d: n.Dot(lowEdge)})
	return r
}

// Rise returns the face the ramp climbs towards.
func (r *Ramp) Rise() cube.Face {
	return r.rise
}

// SlopeNormal returns the unit normal of the sloped face.
func (r *Ramp) SlopeNormal() mgl32.Vec3 {
	return r.planes[len(r.planes)-1].n
}

// Bounds ...
func (r *Ramp) Bounds() cube.BBox {
	return r.bb
}

// Sweep ...
func (r *Ramp) Sweep(center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool) {
	return sweepConvex(r, r.planes, center, halfExtents, direction, maxDistance)
}

// Raycast ...
func (r *Ramp) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RayResult, bool) {
	res, ok := clipConvex(r.planes, mgl32.Vec3{}, origin, direction, maxDistance)
	if !ok {
		return RayResult{}, false
	}
	return RayResult{
		Point:    origin.Add(direction.Mul(res.t)),
		Normal:   res.normal,
		Distance: res.t,
	}, true
}

// Overlaps ...
func (r *Ramp) Overlaps(bb cube.BBox) bool {
	if !r.bb.IntersectsWith(bb) {
		return false
	}
	// The lowest corner of bb along the slope normal must be under the slope.
	slope := r.planes[len(r.planes)-1]
	min, max := bb.Min(), bb.Max()
	center, half := min.Add(max).Mul(0.5), max.Sub(min).Mul(0.5)
	return slope.n.Dot(center)-support(slope.n, half) < slope.d-clipEpsilon
}

// Translated ...
func (r *Ramp) Translated(offset mgl32.Vec3) Collider {
	return NewRamp(r.bb.Translate(offset), r.rise)
}
