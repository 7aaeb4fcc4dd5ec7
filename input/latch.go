package input

import "github.com/go-gl/mathgl/mgl32"

// Latch collects raw samples taken at input rate and hands them out once per physics tick. Button
// presses are edge triggered: a press seen in any sample between two ticks is reported by the next
// frame exactly once, however many samples it was held for.
type Latch struct {
	look *Look

	move      mgl32.Vec3
	jumpHeld  bool
	fireHeld  bool
	jumpLatch bool
	fireLatch bool
}

// NewLatch returns a latch that rotates movement by the yaw of look. A nil look uses NewLook().
func NewLatch(look *Look) *Latch {
	if look == nil {
		look = NewLook()
	}
	return &Latch{look: look}
}

// Look returns the view the latch rotates movement with.
func (l *Latch) Look() *Look {
	return l.look
}

// Update records a raw sample.
func (l *Latch) Update(r Raw) {
	l.look.Update(r.LookX, r.LookY)
	l.move = WorldDirection(r.Horizontal, r.Vertical, l.look.Yaw)

	if r.Jump && !l.jumpHeld {
		l.jumpLatch = true
	}
	// Fire is latched the same way so a press between ticks is not lost, even though movement ignores it.
	if r.Fire && !l.fireHeld {
		l.fireLatch = true
	}
	l.jumpHeld, l.fireHeld = r.Jump, r.Fire
}

// Sample returns the frame for the next physics tick and clears the latched presses. Without any new
// samples the last movement direction is repeated.
func (l *Latch) Sample() Frame {
	f := Frame{
		Move:  l.move,
		Jump:  l.jumpLatch,
		Fire:  l.fireLatch,
		Yaw:   l.look.Yaw,
		Pitch: l.look.Pitch,
	}
	l.jumpLatch, l.fireLatch = false, false
	return f
}

var _ Source = (*Latch)(nil)
