package movement

import "github.com/go-gl/mathgl/mgl32"

// Outcome describes which path the controller took for a tick.
type Outcome uint8

const (
	// OutcomeWalk is a grounded, kinematic move.
	OutcomeWalk Outcome = iota
	// OutcomeLand is a grounded move on the tick the character touched down.
	OutcomeLand
	// OutcomeAir is an airborne tick integrated by Dynamics.
	OutcomeAir
	// OutcomeJump is the tick a pending jump was performed.
	OutcomeJump
	// OutcomeImpulse is the tick an external impulse was applied.
	OutcomeImpulse
)

// String ...
func (o Outcome) String() string {
	switch o {
	case OutcomeWalk:
		return "walk"
	case OutcomeLand:
		return "land"
	case OutcomeAir:
		return "air"
	case OutcomeJump:
		return "jump"
	case OutcomeImpulse:
		return "impulse"
	}
	return "unknown"
}

// Result captures the outcome of a single tick.
type Result struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Movement mgl32.Vec3

	Mode         Mode
	OnGround     bool
	GroundNormal mgl32.Vec3

	// Iterations is the amount of sweeps the move solver needed. It is zero outside of walking.
	Iterations int
	// Stepped is true if the character climbed a step this tick.
	Stepped bool
	// HitWall is true if the character was stopped or deflected by a wall this tick.
	HitWall bool

	Outcome Outcome
}
