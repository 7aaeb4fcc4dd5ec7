package input

import (
	"github.com/oomph-ac/strafe/game"
)

// Look accumulates view rotation from look deltas.
type Look struct {
	// Yaw is the rotation about the up axis in degrees. It grows when turning right.
	Yaw float32
	// Pitch is the rotation about the side axis in degrees, clamped to [-90, 90]. Looking up is negative.
	Pitch float32
	// Speed scales look deltas.
	Speed float32
}

// NewLook returns a Look with the default sensitivity.
func NewLook() *Look {
	return &Look{Speed: game.DefaultLookSpeed}
}

// Update applies a look delta.
func (l *Look) Update(dx, dy float32) {
	l.Yaw += dx * l.Speed
	l.Pitch = game.ClampFloat(l.Pitch-dy*l.Speed, -90, 90)
}
