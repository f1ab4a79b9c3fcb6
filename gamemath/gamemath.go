package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Lerp interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MoveToward advances current toward target by at most maxDelta.
// Used for low-pass smoothing of throttle/steer input targets.
func MoveToward(current, target, maxDelta float64) float64 {
	delta := target - current
	if math.Abs(delta) <= maxDelta {
		return target
	}
	if delta > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFiniteVec reports whether every component of v is finite.
// Degenerate physics states can produce NaN velocities; every force
// term is checked with this before it reaches the dynamics body.
func IsFiniteVec(v mgl64.Vec3) bool {
	return IsFinite(v.X()) && IsFinite(v.Y()) && IsFinite(v.Z())
}

// ClampVecLen returns v scaled down so its length does not exceed max.
func ClampVecLen(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Reflect mirrors v across the plane with unit normal n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// HorizontalSpeed returns the length of v projected onto the ground plane.
func HorizontalSpeed(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

// Horizontal zeroes out the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Up returns the body's local up axis in world space.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(mgl64.Vec3{0, 1, 0})
}

// Forward returns the body's local forward axis (+Z) in world space.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(mgl64.Vec3{0, 0, 1})
}

// Right returns the body's local right axis (+X) in world space.
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(mgl64.Vec3{1, 0, 0})
}

// TiltAngles decomposes the deviation of the local up vector from world
// up into two tilt angles: the rotation about the world X axis and about
// the world Z axis that would produce the observed up vector.
func TiltAngles(up mgl64.Vec3) (tiltX, tiltZ float64) {
	tiltX = math.Atan2(up.Z(), up.Y())
	tiltZ = math.Atan2(-up.X(), up.Y())
	return tiltX, tiltZ
}

// TiltAngle returns the total angular deviation of up from world up.
func TiltAngle(up mgl64.Vec3) float64 {
	return math.Acos(Clamp(up.Y(), -1, 1))
}

// YawOf extracts the heading angle of the orientation's forward axis.
func YawOf(q mgl64.Quat) float64 {
	f := Forward(q)
	return math.Atan2(f.X(), f.Z())
}

// DirFromYawPitch builds a unit direction vector from a heading yaw and
// an elevation pitch (positive pitch aims upward).
func DirFromYawPitch(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{math.Sin(yaw) * cp, math.Sin(pitch), math.Cos(yaw) * cp}
}

// WrapAngle normalizes an angle to (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
