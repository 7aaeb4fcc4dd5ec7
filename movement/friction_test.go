package movement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/settings"
)

const testDt = float32(1) / 50

func TestFriction(t *testing.T) {
	cases := []struct {
		name   string
		v      mgl32.Vec3
		expect mgl32.Vec3
	}{
		{"below stop speed snaps to zero", mgl32.Vec3{0.05, 0, 0.05}, mgl32.Vec3{}},
		{"zero stays zero", mgl32.Vec3{}, mgl32.Vec3{}},
		{"above stop speed retains 80%", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{4, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := applyFriction(c.v, game.DefaultStopSpeed)
			if !got.ApproxEqualThreshold(c.expect, 1e-6) {
				t.Fatalf("applyFriction(%v) = %v, want %v", c.v, got, c.expect)
			}
		})
	}
}

func TestAirAccelerate(t *testing.T) {
	cfg := settings.DefaultSettings().Movement

	t.Run("below the cap input adds up", func(t *testing.T) {
		v := airAccelerate(mgl32.Vec3{1, -3, 0}, mgl32.Vec3{1, 0, 0}, cfg, testDt)
		if !v.ApproxEqualThreshold(mgl32.Vec3{1.8, -3, 0}, 1e-5) {
			t.Fatalf("unexpected velocity %v", v)
		}
	})

	t.Run("strafing above the cap never loses speed", func(t *testing.T) {
		start := mgl32.Vec3{5, 2, 0}
		v := start
		for i := 0; i < 20; i++ {
			// Input perpendicular to the current velocity, the way a strafing player turns.
			input, _ := game.Normalize(mgl32.Vec3{-v.Z(), 0, v.X()})
			next := airAccelerate(v, input, cfg, testDt)
			if game.Vec3HzLen(next) < game.Vec3HzLen(v)-1e-5 {
				t.Fatalf("tick %d: horizontal speed dropped from %v to %v", i, game.Vec3HzLen(v), game.Vec3HzLen(next))
			}
			v = next
		}
		if v.Y() != start.Y() {
			t.Fatalf("vertical velocity must be untouched, got %v", v.Y())
		}
	})

	t.Run("parallel input above the cap keeps speed", func(t *testing.T) {
		start := mgl32.Vec3{5, 2, 0}
		v := start
		for i := 0; i < 20; i++ {
			next := airAccelerate(v, mgl32.Vec3{1, 0, 0}, cfg, testDt)
			if game.Vec3HzLen(next) < game.Vec3HzLen(v) {
				t.Fatalf("tick %d: horizontal speed dropped from %v to %v", i, game.Vec3HzLen(v), game.Vec3HzLen(next))
			}
			if game.Vec3HzLen(next) > game.Vec3HzLen(start)+1e-5 {
				t.Fatalf("tick %d: input along the velocity pushed the speed past %v to %v", i, game.Vec3HzLen(start), game.Vec3HzLen(next))
			}
			v = next
		}
		if v.Y() != start.Y() {
			t.Fatalf("vertical velocity must be untouched, got %v", v.Y())
		}
	})

	t.Run("opposing input above the cap slows down", func(t *testing.T) {
		v := airAccelerate(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{-1, 0, 0}, cfg, testDt)
		if !v.ApproxEqualThreshold(mgl32.Vec3{4.2, 0, 0}, 1e-5) {
			t.Fatalf("unexpected velocity %v", v)
		}
	})

	t.Run("opposing input never exceeds the prior speed", func(t *testing.T) {
		prior := mgl32.Vec3{4, 0, 0}
		input, _ := game.Normalize(mgl32.Vec3{-0.3, 0, 1})
		v := airAccelerate(prior, input, cfg, testDt)
		if game.Vec3HzLen(v) > game.Vec3HzLen(prior)+1e-5 {
			t.Fatalf("speed grew from %v to %v", game.Vec3HzLen(prior), game.Vec3HzLen(v))
		}
		if v == prior {
			t.Fatalf("opposing input must still steer the velocity")
		}
	})
}

func TestMovingAwayFrom(t *testing.T) {
	c := &Controller{}
	cases := []struct {
		name   string
		v      mgl32.Vec3
		normal mgl32.Vec3
		expect bool
	}{
		{"rising off flat ground", mgl32.Vec3{0, 5, 0}, game.Up, true},
		{"falling", mgl32.Vec3{1, -5, 0}, game.Up, false},
		{"running on flat ground", mgl32.Vec3{8, 0, 0}, game.Up, false},
		{"resting", mgl32.Vec3{}, game.Up, false},
		{"running up a ramp", mgl32.Vec3{2, 1, 0}, mgl32.Vec3{-1, 2, 0}.Normalize(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.state.Vel = tc.v
			if got := c.movingAwayFrom(tc.normal); got != tc.expect {
				t.Fatalf("movingAwayFrom(%v, %v) = %v, want %v (angle %v)", tc.v, tc.normal, got, tc.expect,
					game.Angle(game.ProjectOnPlane(tc.v, tc.normal), tc.v))
			}
		})
	}
}

func TestJumpVelocityFormula(t *testing.T) {
	cfg := settings.DefaultSettings().Movement
	c := &Controller{cfg: cfg}
	want := math32.Sqrt(-2.1 * cfg.GravityY * cfg.JumpHeight)
	if got := c.JumpVelocity(); got != want {
		t.Fatalf("JumpVelocity() = %v, want %v", got, want)
	}
}
