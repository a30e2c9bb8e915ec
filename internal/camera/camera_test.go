package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena/internal/config"
	"arena/internal/vehicle"
)

func newFollow() *Follow {
	return NewFollow(config.Default().Camera, 60)
}

func TestFollow_SitsBehindVehicle(t *testing.T) {
	f := newFollow()
	s := vehicle.InitialState()
	s.Position = mgl64.Vec3{300, 0, -200}

	f.Update(s, 1.0/60)

	assert.InDelta(t, 400, f.Eye.Y(), 1e-9)
	offset := f.Eye.Sub(s.Position)
	// Behind means opposite the direction of travel.
	assert.InDelta(t, -1000, offset.Dot(s.Heading()), 1e-9)
	assert.InDelta(t, LookHeight, f.Target.Y(), 1e-9)

	// The vehicle is in front of the camera and centred horizontally.
	inView := f.View().Mul4x1(s.Position.Vec4(1))
	assert.Less(t, inView.Z(), 0.0)
	assert.InDelta(t, 0, inView.X(), 1e-6)
}

func TestFollow_TurnsWithVehicle(t *testing.T) {
	f := newFollow()
	for _, yaw := range []float64{0, math.Pi / 2, math.Pi, 4} {
		s := vehicle.State{Yaw: yaw}
		f.Smoothing = 0
		f.Update(s, 1.0/60)
		assert.InDelta(t, -1000, f.Eye.Sub(s.Position).Dot(s.Heading()), 1e-9, "yaw %v", yaw)
	}
}

func TestFollow_Smoothing(t *testing.T) {
	f := newFollow()
	s := vehicle.InitialState()
	f.Update(s, 1.0/60)
	start := f.Eye

	s.Position = mgl64.Vec3{0, 0, -500}
	want, _ := f.Desired(s)

	f.Update(s, 1.0/60)
	moved := f.Eye.Sub(start).Len()
	total := want.Sub(start).Len()
	assert.Greater(t, moved, 0.0)
	assert.Less(t, moved, total)

	// Zero dt holds still.
	before := f.Eye
	f.Update(s, 0)
	assert.Equal(t, before, f.Eye)

	for i := 0; i < 600; i++ {
		f.Update(s, 1.0/60)
	}
	assert.InDelta(t, 0, f.Eye.Sub(want).Len(), 1e-6)
}

func TestFollow_Shake(t *testing.T) {
	f := newFollow()
	f.Update(vehicle.InitialState(), 1.0/60)

	f.AddShake(20, 0.3)
	f.UpdateShake(0.1, 7)
	require.NotEqual(t, mgl64.Vec3{}, f.Shake)
	for k := 0; k < 3; k++ {
		assert.LessOrEqual(t, math.Abs(f.Shake[k]), 20.0)
	}

	f.UpdateShake(0.5, 7)
	f.UpdateShake(0.1, 7)
	assert.Equal(t, mgl64.Vec3{}, f.Shake)
	assert.Zero(t, f.ShakeIntensity)
}

func TestFollow_Projection(t *testing.T) {
	f := newFollow()
	p := f.Projection(16.0 / 9)
	q := f.Projection(0)
	assert.NotEqual(t, p, q)
	assert.Equal(t, mgl64.Perspective(mgl64.DegToRad(60), 1, 1, 20000), q)
}
