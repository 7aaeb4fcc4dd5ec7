package movement

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/assert"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/settings"
	"github.com/oomph-ac/strafe/world"
)

// Config holds everything a Controller is built from.
type Config struct {
	Movement settings.Movement
	Body     settings.Body

	// World answers the sweep queries of the controller.
	World world.Provider
	// Dynamics integrates the character while it is airborne or hit by an impulse.
	Dynamics Dynamics

	// Spawn is the position the character starts at.
	Spawn mgl32.Vec3

	// Logger receives mode transitions. It defaults to slog.Default().
	Logger *slog.Logger
	// Debugf receives internal solver trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Controller moves a single box shaped character through a world. It is not safe for concurrent
// use: Tick, Jump and ApplyImpulse are expected to be called from the same goroutine.
type Controller struct {
	cfg      settings.Movement
	world    world.Provider
	dynamics Dynamics

	state State
	dt    float32

	log    *slog.Logger
	debugf func(format string, args ...any)
}

// New creates a controller from cfg. Settings that would make the solver misbehave are rejected.
func New(cfg Config) (*Controller, error) {
	assert.IsTrue(cfg.World != nil, "controller requires a world provider")
	assert.IsTrue(cfg.Dynamics != nil, "controller requires dynamics")

	if err := cfg.Movement.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if err := cfg.Body.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Controller{
		cfg:      cfg.Movement,
		world:    cfg.World,
		dynamics: cfg.Dynamics,
		dt:       cfg.Movement.TickDuration(),
		log:      cfg.Logger,
		debugf:   cfg.Debugf,
	}
	c.state.HalfExtents = cfg.Body.HalfExtents()
	c.state.CenterOffset = mgl32.Vec3{0, cfg.Body.CenterOffsetY, 0}
	c.Respawn(cfg.Spawn)
	return c, nil
}

// Tick advances the character by one fixed tick. move is the world space movement input on the XZ
// plane and is clamped to a length of 1.
func (c *Controller) Tick(move mgl32.Vec3) Result {
	s := &c.state
	move = game.ClampMagnitude(game.Horizontal(move), 1)
	start := s.Pos

	res := Result{}
	switch {
	case s.HasImpulse:
		c.reconcileImpulse()
		res.Outcome = OutcomeImpulse
	default:
		if s.Mode == ModeImpulse {
			c.setMode(ModeAirborne)
		}
		res = c.tickMovement(move)
	}

	s.SetMov(s.Pos.Sub(start))
	res.Position = s.Pos
	res.Velocity = s.Vel
	res.Movement = s.Mov
	res.Mode = s.Mode
	res.OnGround = s.Mode == ModeGrounded
	res.GroundNormal = s.GroundNormal
	return res
}

// tickMovement runs the ordinary cycle: classify the ground, then either jump, walk or move through
// the air.
func (c *Controller) tickMovement(move mgl32.Vec3) Result {
	s := &c.state
	wasGrounded := s.Mode == ModeGrounded
	grounded := c.classifyGround()

	if s.PendingJump {
		s.PendingJump = false
		c.jump()
		c.airMove(move)
		c.integrate()
		return Result{Outcome: OutcomeJump}
	}

	if grounded {
		outcome := OutcomeWalk
		if !wasGrounded {
			// The body's horizontal velocity becomes the intent the character walks with.
			s.SetVel(game.Horizontal(s.Vel))
			c.setMode(ModeGrounded)
			outcome = OutcomeLand
		}
		res := c.walk(move)
		res.Outcome = outcome
		return res
	}

	if wasGrounded {
		// The intent velocity is handed to the body as is.
		c.setMode(ModeAirborne)
	}
	c.airMove(move)
	c.integrate()
	return Result{Outcome: OutcomeAir}
}

// integrate runs one tick of Dynamics on the character.
func (c *Controller) integrate() {
	s := &c.state
	body := &Body{
		Position:    s.Center(),
		Velocity:    s.Vel,
		HalfExtents: s.HalfExtents,
	}
	c.dynamics.Integrate(body, c.cfg.Gravity(), c.dt)
	s.SetPos(body.Position.Sub(s.CenterOffset))
	s.SetVel(body.Velocity)
}

// Jump requests a jump on the next tick. The request is only latched while the character is
// grounded and no jump is pending yet; it returns whether it was latched.
func (c *Controller) Jump() bool {
	if c.state.Mode != ModeGrounded || c.state.PendingJump {
		return false
	}
	c.state.PendingJump = true
	return true
}

// JumpVelocity returns the vertical velocity a jump gives the character.
func (c *Controller) JumpVelocity() float32 {
	return math32.Sqrt(-game.JumpCorrection * c.cfg.GravityY * c.cfg.JumpHeight)
}

// jump sets the vertical velocity of the character and releases it from the ground. The horizontal
// intent is carried over into the body velocity.
func (c *Controller) jump() {
	s := &c.state
	vel := game.Horizontal(s.Vel)
	vel[1] = c.JumpVelocity()
	s.SetVel(vel)
	c.setMode(ModeAirborne)
	c.debug("jump: velocity %v", vel)
}

// Teleport moves the character to pos without touching its velocity. The ground is classified
// again on the next tick.
func (c *Controller) Teleport(pos mgl32.Vec3) {
	s := &c.state
	s.Pos, s.LastPos = pos, pos
	if s.Mode == ModeGrounded {
		c.setMode(ModeAirborne)
	}
}

// Respawn moves the character to pos and resets its velocity and any pending jump or impulse.
func (c *Controller) Respawn(pos mgl32.Vec3) {
	s := &c.state
	s.Pos, s.LastPos = pos, pos
	s.Vel, s.LastVel = mgl32.Vec3{}, mgl32.Vec3{}
	s.Mov, s.LastMov = mgl32.Vec3{}, mgl32.Vec3{}
	s.PendingJump = false
	s.PendingImpulse, s.HasImpulse = mgl32.Vec3{}, false
	s.GroundNormal = mgl32.Vec3{}
	s.Mode = ModeAirborne
}

// State returns a copy of the movement state.
func (c *Controller) State() State {
	return c.state
}

// Position ...
func (c *Controller) Position() mgl32.Vec3 {
	return c.state.Pos
}

// Velocity ...
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.state.Vel
}

// Mode ...
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// OnGround ...
func (c *Controller) OnGround() bool {
	return c.state.Mode == ModeGrounded
}

// Kinematic reports whether the controller currently owns the character's motion.
func (c *Controller) Kinematic() bool {
	return c.state.Kinematic()
}

func (c *Controller) setMode(m Mode) {
	if c.state.Mode == m {
		return
	}
	c.log.Debug("movement mode changed", "from", c.state.Mode, "to", m, "pos", c.state.Pos)
	c.state.Mode = m
}

func (c *Controller) debug(format string, args ...any) {
	if c.debugf != nil {
		c.debugf(format, args...)
	}
}
