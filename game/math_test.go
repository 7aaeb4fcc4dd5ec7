package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}

func TestProjectOnPlane(t *testing.T) {
	cases := []struct {
		name   string
		v, n   mgl32.Vec3
		expect mgl32.Vec3
	}{
		{"flat floor drops y", mgl32.Vec3{1, -2, 3}, Up, mgl32.Vec3{1, 0, 3}},
		{"non unit normal", mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 0, 0}},
		{"zero normal", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}},
		{"parallel to normal", mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ProjectOnPlane(c.v, c.n); !vecApproxEq(got, c.expect) {
				t.Fatalf("ProjectOnPlane(%v, %v) = %v, want %v", c.v, c.n, got, c.expect)
			}
		})
	}
}

func TestClampMagnitude(t *testing.T) {
	v := ClampMagnitude(mgl32.Vec3{3, 0, 4}, 1)
	if !Float32ApproxEq(v.Len(), 1) || !vecApproxEq(v, mgl32.Vec3{0.6, 0, 0.8}) {
		t.Fatalf("expected unit vector along (0.6, 0, 0.8), got %v", v)
	}
	short := mgl32.Vec3{0.1, 0, 0}
	if ClampMagnitude(short, 1) != short {
		t.Fatalf("short vector should be untouched")
	}
}

func TestAngle(t *testing.T) {
	if a := Angle(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}); !Float32ApproxEq(a, 90) {
		t.Fatalf("expected 90 degrees, got %v", a)
	}
	if a := Angle(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}); a != 0 {
		t.Fatalf("angle with zero vector should be 0, got %v", a)
	}
	if a := Angle(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-1, 0, 0}); !Float32ApproxEq(a, 180) {
		t.Fatalf("expected 180 degrees, got %v", a)
	}
}

func TestRotateYaw(t *testing.T) {
	forward := mgl32.Vec3{0, 0, 1}
	if got := RotateYaw(forward, 90); !vecApproxEq(got, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("yaw 90 should turn forward to +X, got %v", got)
	}
	if got := RotateYaw(forward, -90); !vecApproxEq(got, mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("yaw -90 should turn forward to -X, got %v", got)
	}
	if got := RotateYaw(forward, 360); !vecApproxEq(got, forward) {
		t.Fatalf("full turn should be identity, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if _, ok := Normalize(mgl32.Vec3{}); ok {
		t.Fatalf("zero vector must not normalize")
	}
	n, ok := Normalize(mgl32.Vec3{0, 0, -5})
	if !ok || !vecApproxEq(n, mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("expected (0, 0, -1), got %v (ok=%v)", n, ok)
	}
}

func TestJumpCorrectionPinned(t *testing.T) {
	// Feel depends on these; changing them is a tuning decision, not a refactor.
	if JumpCorrection != 2.1 || FrictionRetention != 0.8 || SkinOffset != 0.01 || MaxMoveIterations != 6 {
		t.Fatalf("solver constants changed: jump=%v friction=%v skin=%v iterations=%v",
			JumpCorrection, FrictionRetention, SkinOffset, MaxMoveIterations)
	}
}
