package world

import (
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sasha-s/go-deadlock"
)

// broadphaseMargin grows the swept bounds so colliders that are only touched still get the exact test.
const broadphaseMargin = 1e-3

// World is an in-memory Provider holding static and dynamic colliders. Colliders may be added,
// moved and removed between ticks while other goroutines query the world.
type World struct {
	colliders *orderedmap.OrderedMap[uint64, Collider]
	nextID    uint64

	logger *slog.Logger

	deadlock.RWMutex
}

// New returns an empty world. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		colliders: orderedmap.NewOrderedMap[uint64, Collider](),
		logger:    logger,
	}
}

// Add adds a collider to the world and returns the ID it can later be moved or removed with.
func (w *World) Add(c Collider) uint64 {
	w.Lock()
	defer w.Unlock()

	w.nextID++
	w.colliders.Set(w.nextID, c)
	w.logger.Debug("collider added", "id", w.nextID, "bounds", c.Bounds())
	return w.nextID
}

// Remove removes the collider with the ID passed. It returns false if no such collider exists.
func (w *World) Remove(id uint64) bool {
	w.Lock()
	defer w.Unlock()

	if !w.colliders.Delete(id) {
		return false
	}
	w.logger.Debug("collider removed", "id", id)
	return true
}

// Move translates the collider with the ID passed by offset, keeping its ID.
func (w *World) Move(id uint64, offset mgl32.Vec3) bool {
	w.Lock()
	defer w.Unlock()

	c, ok := w.colliders.Get(id)
	if !ok {
		return false
	}
	w.colliders.Set(id, c.Translated(offset))
	return true
}

// Collider returns the collider with the ID passed.
func (w *World) Collider(id uint64) (Collider, bool) {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Get(id)
}

// Len returns the amount of colliders in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Len()
}

// Sweep returns the closest contact among all colliders. On equal distances the collider added
// first wins.
func (w *World) Sweep(center, halfExtents, direction mgl32.Vec3, maxDistance float32) (SweepResult, bool) {
	if maxDistance < 0 || direction.LenSqr() == 0 {
		return SweepResult{}, false
	}
	swept := BoxAt(center, halfExtents).Extend(direction.Mul(maxDistance)).Grow(broadphaseMargin)

	w.RLock()
	defer w.RUnlock()

	var (
		closest SweepResult
		found   bool
	)
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		c := el.Value
		if !c.Bounds().IntersectsWith(swept) {
			continue
		}
		res, ok := c.Sweep(center, halfExtents, direction, maxDistance)
		if !ok || (found && res.Distance >= closest.Distance) {
			continue
		}
		closest, found = res, true
	}
	return closest, found
}

// Overlap ...
func (w *World) Overlap(center, halfExtents mgl32.Vec3) bool {
	bb := BoxAt(center, halfExtents)

	w.RLock()
	defer w.RUnlock()
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		if el.Value.Overlaps(bb) {
			return true
		}
	}
	return false
}

// Raycast returns the closest ray contact among all colliders.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RayResult, bool) {
	w.RLock()
	defer w.RUnlock()

	var (
		closest RayResult
		found   bool
	)
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		res, ok := el.Value.Raycast(origin, direction, maxDistance)
		if ok && (!found || res.Distance < closest.Distance) {
			closest, found = res, true
		}
	}
	return closest, found
}
