// Package input turns raw device samples into the per tick frames a movement controller consumes.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// Raw is a single sample of the input devices, as read at input rate.
type Raw struct {
	// Horizontal and Vertical are the movement axes, each in [-1, 1]. Vertical is forward.
	Horizontal float32 `yaml:"horizontal"`
	Vertical   float32 `yaml:"vertical"`
	// LookX and LookY are the look deltas since the previous sample.
	LookX float32 `yaml:"look_x"`
	LookY float32 `yaml:"look_y"`
	// Jump and Fire report whether the buttons are held down.
	Jump bool `yaml:"jump"`
	Fire bool `yaml:"fire"`
}

// Frame is the input consumed by one physics tick.
type Frame struct {
	// Move is the world space movement direction on the XZ plane with a length of at most 1.
	Move mgl32.Vec3
	// Jump and Fire are true if the button went down since the previous frame. The controller only
	// consumes Jump. Fire is latched for whatever handles projectiles and reaches it through the
	// frames kept in a session's history.
	Jump, Fire bool
	// Yaw and Pitch are the view angles in degrees the frame was sampled with.
	Yaw, Pitch float32
}

// Source provides one Frame per physics tick.
type Source interface {
	Sample() Frame
}

// WorldDirection converts movement axes into a world space direction by clamping them to a length
// of 1 and rotating them by the view yaw.
func WorldDirection(horizontal, vertical, yaw float32) mgl32.Vec3 {
	axes := game.ClampMagnitude(mgl32.Vec3{horizontal, 0, vertical}, 1)
	return game.RotateYaw(axes, yaw)
}
