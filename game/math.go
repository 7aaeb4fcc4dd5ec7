package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilonSqr is the squared length under which a vector is treated as zero.
const epsilonSqr = float32(1e-12)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x float32) float32 {
	if x < 0 {
		return -1
	} else if x > 0 {
		return 1
	}
	return 0
}

// IsZero reports whether v is (almost) the zero vector.
func IsZero(v mgl32.Vec3) bool {
	return v.LenSqr() <= epsilonSqr
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged and ok is false.
func Normalize(v mgl32.Vec3) (n mgl32.Vec3, ok bool) {
	lenSqr := v.LenSqr()
	if lenSqr <= epsilonSqr {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / math32.Sqrt(lenSqr)), true
}

// Horizontal returns v with its Y component removed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzLen returns the horizontal length of a vector.
func Vec3HzLen(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(vec3))
}

// ProjectOnPlane projects v onto the plane through the origin with the given normal. The normal
// does not have to be unit length; a zero normal leaves v untouched.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	lenSqr := normal.LenSqr()
	if lenSqr <= epsilonSqr {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / lenSqr))
}

// ClampMagnitude returns v shortened to max if it is longer than that.
func ClampMagnitude(v mgl32.Vec3, max float32) mgl32.Vec3 {
	lenSqr := v.LenSqr()
	if lenSqr <= max*max {
		return v
	}
	return v.Mul(max / math32.Sqrt(lenSqr))
}

// Angle returns the unsigned angle in degrees between a and b. If either is the zero vector the
// angle is zero.
func Angle(a, b mgl32.Vec3) float32 {
	denom := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if denom <= 1e-15 {
		return 0
	}
	cos := ClampFloat(a.Dot(b)/denom, -1, 1)
	return mgl32.RadToDeg(math32.Acos(cos))
}

// RotateYaw rotates v about the up axis by yaw degrees. Positive yaw turns +Z towards +X, which is
// the convention of a camera whose yaw grows when turning right.
func RotateYaw(v mgl32.Vec3, yaw float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yaw)
	sin, cos := math32.Sincos(rad)
	return mgl32.Vec3{
		v.X()*cos + v.Z()*sin,
		v.Y(),
		v.Z()*cos - v.X()*sin,
	}
}
