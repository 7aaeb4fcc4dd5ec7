package movement

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the control mode of a character for a tick. A character is in exactly one mode at a time.
type Mode uint8

const (
	// ModeAirborne hands the character to Dynamics with air control applied on top.
	ModeAirborne Mode = iota
	// ModeGrounded moves the character kinematically along the ground.
	ModeGrounded
	// ModeImpulse is the single tick after an external impulse during which Dynamics alone owns the body.
	ModeImpulse
)

// String ...
func (m Mode) String() string {
	switch m {
	case ModeGrounded:
		return "grounded"
	case ModeAirborne:
		return "airborne"
	case ModeImpulse:
		return "impulse"
	}
	return "unknown"
}

// State holds the movement state of a single character.
type State struct {
	// Pos is the origin of the character. The centre of its box is Pos + CenterOffset.
	Pos, LastPos mgl32.Vec3
	// Vel is the horizontal intent velocity while grounded and the body velocity otherwise.
	Vel, LastVel mgl32.Vec3
	// Mov is the displacement the character actually made during the last tick.
	Mov, LastMov mgl32.Vec3

	HalfExtents  mgl32.Vec3
	CenterOffset mgl32.Vec3

	Mode         Mode
	GroundNormal mgl32.Vec3

	PendingJump    bool
	PendingImpulse mgl32.Vec3
	HasImpulse     bool
}

// SetPos sets the position of the character, keeping the previous one in LastPos.
func (s *State) SetPos(pos mgl32.Vec3) {
	s.LastPos = s.Pos
	s.Pos = pos
}

// SetVel sets the velocity of the character, keeping the previous one in LastVel.
func (s *State) SetVel(vel mgl32.Vec3) {
	s.LastVel = s.Vel
	s.Vel = vel
}

// SetMov sets the displacement of the last tick, keeping the previous one in LastMov.
func (s *State) SetMov(mov mgl32.Vec3) {
	s.LastMov = s.Mov
	s.Mov = mov
}

// Center returns the centre of the character's box.
func (s *State) Center() mgl32.Vec3 {
	return s.Pos.Add(s.CenterOffset)
}

// FeetY returns the height of the bottom of the character's box.
func (s *State) FeetY() float32 {
	return s.Center().Y() - s.HalfExtents.Y()
}

// Kinematic reports whether the controller, rather than Dynamics, moves the character.
func (s *State) Kinematic() bool {
	return s.Mode == ModeGrounded
}
