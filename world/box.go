package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is a solid axis aligned box.
type Box struct {
	bb cube.BBox
}

// NewBox returns a box collider occupying bb.
func NewBox(bb cube.BBox) *Box {
	return &Box{bb: bb}
}

// Bounds ...
func (b *Box) Bounds() cube.BBox {
	return b.bb
}

// Sweep ...
func (b *Box) Sweep(center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool) {
	return sweepConvex(b, boxPlanes(b.bb), center, halfExtents, direction, maxDistance)
}

// Raycast ...
func (b *Box) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RayResult, bool) {
	if b.bb.Vec3Within(origin) {
		return RayResult{}, false
	}
	res, ok := trace.BBoxIntercept(b.bb, origin, origin.Add(direction.Mul(maxDistance)))
	if !ok {
		return RayResult{}, false
	}
	pos := res.Position()
	return RayResult{
		Point:    pos,
		Normal:   FaceNormal(hitFace(b.bb, pos, direction)),
		Distance: pos.Sub(origin).Len(),
	}, true
}

// Overlaps ...
func (b *Box) Overlaps(bb cube.BBox) bool {
	return b.bb.IntersectsWith(bb)
}

// Translated ...
func (b *Box) Translated(offset mgl32.Vec3) Collider {
	return NewBox(b.bb.Translate(offset))
}

// FaceNormal returns the outward unit normal of a face of an axis aligned box.
func FaceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}

// hitFace returns the face of bb a ray travelling along direction entered through at pos. On edges
// the face facing the ray most directly wins.
func hitFace(bb cube.BBox, pos, direction mgl32.Vec3) cube.Face {
	min, max := bb.Min(), bb.Max()
	candidates := [6]struct {
		face cube.Face
		dist float32
	}{
		{cube.FaceWest, math32.Abs(pos[0] - min[0])},
		{cube.FaceEast, math32.Abs(pos[0] - max[0])},
		{cube.FaceDown, math32.Abs(pos[1] - min[1])},
		{cube.FaceUp, math32.Abs(pos[1] - max[1])},
		{cube.FaceNorth, math32.Abs(pos[2] - min[2])},
		{cube.FaceSouth, math32.Abs(pos[2] - max[2])},
	}
	best, bestFacing := candidates[0], FaceNormal(candidates[0].face).Dot(direction)
	for _, c := range candidates[1:] {
		facing := FaceNormal(c.face).Dot(direction)
		if c.dist < best.dist-clipEpsilon || (c.dist <= best.dist+clipEpsilon && facing < bestFacing) {
			best, bestFacing = c, facing
		}
	}
	return best.face
}
