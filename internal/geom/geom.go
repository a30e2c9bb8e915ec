// Package geom holds the vector and transform helpers shared by the layout
// generator, the vehicle simulator and the renderer.
//
// The world is right-handed with Y up; "forward" for an unrotated object is
// -Z, matching the projection used by the camera.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the magnitude below which a vector is treated as zero.
const Epsilon = 1e-9

var (
	Up       = mgl64.Vec3{0, 1, 0}
	Down     = mgl64.Vec3{0, -1, 0}
	Forward  = mgl64.Vec3{0, 0, -1}
	Backward = mgl64.Vec3{0, 0, 1}
	Left     = mgl64.Vec3{-1, 0, 0}
	Right    = mgl64.Vec3{1, 0, 0}
)

// SafeNormalize returns v scaled to unit length, or fallback when v is too
// short to normalize.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Horizontal drops the height component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ForwardFromYaw is the forward axis of an object rotated by yaw about Up.
func ForwardFromYaw(yaw float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(yaw).Mul3x1(Forward)
}

// Transform is a position plus a rotation about the up axis.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Matrix composes rotation first and translation second.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl64.HomogRotate3DY(t.Yaw))
}

// ScaledMatrix is Matrix with a uniform scale applied before rotation.
func (t Transform) ScaledMatrix(scale float64) mgl64.Mat4 {
	return t.Matrix().Mul4(mgl64.Scale3D(scale, scale, scale))
}

// Forward is the transform's forward axis.
func (t Transform) Forward() mgl64.Vec3 {
	return ForwardFromYaw(t.Yaw)
}

// ToMat32 narrows a matrix for GL uniforms.
func ToMat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp maps t (clamped to [0,1]) onto [min, max].
func Lerp(t, min, max float64) float64 {
	t = ClampF(t, 0, 1)
	return min + float64((max-min)*t)
}

// Approach moves cur toward target by at most maxDelta.
func Approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// AngDiff is the signed shortest rotation from a to b.
func AngDiff(a, b float64) float64 {
	d := b - a
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
