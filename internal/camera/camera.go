// Package camera follows the vehicle from behind and above.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/config"
	"arena/internal/geom"
	"arena/internal/rng"
	"arena/internal/vehicle"
)

// LookHeight raises the look-at point above the car's origin.
const LookHeight = 50.0

type Follow struct {
	Distance  float64
	Height    float64
	Smoothing float64 // 1/s; 0 snaps every frame

	FOV       float64 // radians
	Near, Far float64

	Eye, Target mgl64.Vec3

	// Screen shake.
	Shake          mgl64.Vec3
	ShakeTimer     float64
	ShakeIntensity float64

	primed bool
}

func NewFollow(c config.Camera, fovDegrees float64) *Follow {
	return &Follow{
		Distance:  c.Distance,
		Height:    c.Height,
		Smoothing: c.Smoothing,
		FOV:       mgl64.DegToRad(fovDegrees),
		Near:      c.Near,
		Far:       c.Far,
	}
}

// Desired is where the camera wants to be for s.
func (f *Follow) Desired(s vehicle.State) (eye, target mgl64.Vec3) {
	target = s.Position.Add(geom.Up.Mul(LookHeight))
	back := geom.Horizontal(s.Heading()).Mul(-f.Distance)
	eye = s.Position.Add(back).Add(geom.Up.Mul(f.Height))
	return eye, target
}

// Update eases the camera toward its desired pose. The first call snaps.
func (f *Follow) Update(s vehicle.State, dt float64) {
	eye, target := f.Desired(s)
	if !f.primed || f.Smoothing <= 0 {
		f.Eye, f.Target = eye, target
		f.primed = true
		return
	}
	if dt <= 0 {
		return
	}
	t := 1 - math.Exp(-f.Smoothing*dt)
	f.Eye = f.Eye.Add(eye.Sub(f.Eye).Mul(t))
	f.Target = f.Target.Add(target.Sub(f.Target).Mul(t))
}

// AddShake triggers screen shake with given intensity and duration.
func (f *Follow) AddShake(intensity, duration float64) {
	f.ShakeIntensity = max(f.ShakeIntensity, intensity)
	f.ShakeTimer = max(f.ShakeTimer, duration)
}

// UpdateShake decays shake and draws a fresh offset.
func (f *Follow) UpdateShake(dt float64, seed uint64) {
	if f.ShakeTimer <= 0 {
		f.Shake = mgl64.Vec3{}
		f.ShakeIntensity = 0
		return
	}
	f.ShakeTimer = max(f.ShakeTimer-dt, 0)
	t := f.ShakeTimer
	r := rng.New(seed ^ uint64(t*10000))
	mag := f.ShakeIntensity * (t / (t + 0.08))
	f.Shake = mgl64.Vec3{r.RangeF(-mag, mag), r.RangeF(-mag, mag), r.RangeF(-mag, mag)}
}

func (f *Follow) View() mgl64.Mat4 {
	return mgl64.LookAtV(f.Eye.Add(f.Shake), f.Target, geom.Up)
}

func (f *Follow) Projection(aspect float64) mgl64.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl64.Perspective(f.FOV, aspect, f.Near, f.Far)
}
