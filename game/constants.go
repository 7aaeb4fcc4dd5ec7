package game

import "github.com/go-gl/mathgl/mgl32"

// Default movement tuning. The values were reached by feel and are pinned by tests; change them
// through settings rather than here.
const (
	DefaultRunAcceleration = float32(100)
	DefaultAirAcceleration = float32(40)
	DefaultMaxRunSpeed     = float32(8)
	DefaultMaxAirSpeed     = float32(3)
	DefaultStopSpeed       = float32(0.1)
	DefaultJumpHeight      = float32(1.1)
	DefaultGravityY        = float32(-20)

	// DefaultWalkableNormalY is the minimum Y component of a surface normal the character may stand on.
	DefaultWalkableNormalY = float32(0.7)
	// DefaultGroundedDistance is the tolerance of the ground query, both for the swept slab's own
	// thickness and for how far a contact may sit from the feet.
	DefaultGroundedDistance = float32(0.01)
	DefaultStepHeight       = float32(0.1)

	DefaultTickRate = 50
)

// Solver constants. These are not exposed as settings.
const (
	// FrictionRetention is the share of horizontal speed kept after one grounded tick.
	FrictionRetention = float32(0.8)
	// JumpCorrection replaces the 2 in v = sqrt(2gh) to make up for the apex lost to discrete ticks.
	JumpCorrection = float32(2.1)
	// SkinOffset is the distance sweeps are backed off by so a moved box never re-penetrates.
	SkinOffset = float32(0.01)
	// SnapUpOffset is how far above the candidate position the ground snap starts sweeping.
	SnapUpOffset = float32(0.01)
	// StepClearance is added on top of the step height when probing for head room.
	StepClearance = float32(0.001)
	// MinStepProgress is the forward distance a raised sweep must gain before a step is committed.
	MinStepProgress = float32(0.01)
	// GroundAngleEpsilon is the angle in degrees between velocity and its projection onto a contact
	// plane above which a rising character is considered to be moving away from that plane.
	GroundAngleEpsilon = float32(1)
	// GroundVerifyHeight is how far above a sweep contact the verification ray starts.
	GroundVerifyHeight = float32(1)
	// MaxMoveIterations bounds the move-and-slide loop.
	MaxMoveIterations = 6
	// DefaultLookSpeed is the view sensitivity applied to look deltas.
	DefaultLookSpeed = float32(2)
)

var (
	// Up is the world up axis.
	Up = mgl32.Vec3{0, 1, 0}
	// Down is the world down axis.
	Down = mgl32.Vec3{0, -1, 0}
)
