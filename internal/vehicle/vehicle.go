// Package vehicle integrates the player car one tick at a time.
//
// The model is intentionally simple: gravity while airborne, a jump impulse
// or drive force while grounded, plus a friction pair that bleeds speed along
// the car's heading and resists sideways slip less the faster the car moves.
package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/geom"
)

// Constants are fixed for a session.
type Constants struct {
	// Gravity is signed; negative pulls toward the floor.
	Gravity    float64
	JumpAccel  float64
	DriveAccel float64
	// RotationRate is the yaw speed in rad/s while turning.
	RotationRate float64

	// ForwardFriction and LateralFriction are negative coefficients applied
	// to the frontal and sideways parts of the horizontal velocity.
	ForwardFriction float64
	LateralFriction float64
	// LateralFrictionBase is the frontal speed at which sideways damping
	// runs at its nominal rate.
	LateralFrictionBase float64

	// Scale only affects the render matrix.
	Scale float64
}

// DefaultConstants is the tuning the arena ships with.
func DefaultConstants() Constants {
	return Constants{
		Gravity:             -2000,
		JumpAccel:           50000,
		DriveAccel:          5000,
		RotationRate:        2,
		ForwardFriction:     -0.5,
		LateralFriction:     -50,
		LateralFrictionBase: 75,
		Scale:               0.5,
	}
}

// Input is one tick of player intent. Each axis is -1, 0 or 1.
type Input struct {
	Forward float64 // +1 accelerate, -1 reverse
	Lateral float64 // +1 steer right, -1 steer left
	Jump    bool
}

// State is the car's kinematic snapshot.
type State struct {
	Position mgl64.Vec3
	Yaw      float64
	Velocity mgl64.Vec3
}

// InitialState parks the car at the origin. The model is turned half a
// revolution, so it starts heading toward -Z.
func InitialState() State {
	return State{Yaw: math.Pi}
}

// Forward is the model's forward axis. Throttle drives against it.
func (s State) Forward() mgl64.Vec3 { return geom.ForwardFromYaw(s.Yaw) }

// Heading is the direction positive throttle accelerates toward.
func (s State) Heading() mgl64.Vec3 { return s.Forward().Mul(-1) }

func (s State) Grounded() bool { return s.Position[1] <= 0 }

// Speed is the horizontal speed.
func (s State) Speed() float64 { return geom.Horizontal(s.Velocity).Len() }

func (s State) Transform() geom.Transform {
	return geom.Transform{Position: s.Position, Yaw: s.Yaw}
}

// Result records how a tick was resolved.
type Result struct {
	State        State
	Acceleration mgl64.Vec3
	Displacement mgl64.Vec3
	DeltaYaw     float64
	Grounded     bool
	// Clamped reports that the floor stopped the displacement.
	Clamped bool
}

// Simulator advances a State under fixed Constants.
type Simulator struct {
	c Constants
}

func NewSimulator(c Constants) *Simulator {
	return &Simulator{c: c}
}

func (sim *Simulator) Constants() Constants { return sim.c }

// Matrix is the draw transform of s: scale, rotate, then translate.
func (sim *Simulator) Matrix(s State) mgl64.Mat4 {
	return s.Transform().ScaledMatrix(sim.c.Scale)
}

// Step returns the state after dt seconds. dt <= 0 leaves s unchanged.
func (sim *Simulator) Step(s State, in Input, dt float64) State {
	return sim.Advance(s, in, dt).State
}

// Advance is Step with the intermediate terms exposed.
func (sim *Simulator) Advance(s State, in Input, dt float64) Result {
	grounded := s.Grounded()
	if !(dt > 0) {
		return Result{State: s, Grounded: grounded}
	}

	// Both the turn and the forces use the pre-tick heading and velocity.
	deltaYaw := sim.deltaYaw(s, in, dt)
	acc := sim.acceleration(s, in, dt)

	// The linear term uses the pre-update velocity.
	disp := s.Velocity.Mul(dt).Add(acc.Mul(dt * dt))
	vel := s.Velocity.Add(acc.Mul(dt))

	clamped := false
	if s.Position[1]+disp[1] < 0 {
		disp[1] = -s.Position[1]
		clamped = true
	}

	next := State{
		Position: s.Position.Add(disp),
		Yaw:      s.Yaw + deltaYaw,
		Velocity: vel,
	}
	if clamped {
		next.Position[1] = 0
	}

	return Result{
		State:        next,
		Acceleration: acc,
		Displacement: disp,
		DeltaYaw:     deltaYaw,
		Grounded:     grounded,
		Clamped:      clamped,
	}
}

// deltaYaw turns at a constant rate, but only while the car is moving.
func (sim *Simulator) deltaYaw(s State, in Input, dt float64) float64 {
	if s.Velocity[0] == 0 && s.Velocity[2] == 0 {
		return 0
	}
	return geom.Sign(-in.Lateral) * sim.c.RotationRate * dt
}

func (sim *Simulator) acceleration(s State, in Input, dt float64) mgl64.Vec3 {
	c := sim.c
	fwd := geom.SafeNormalize(s.Forward(), geom.Forward)

	var acc mgl64.Vec3
	switch {
	case !s.Grounded():
		acc = geom.Up.Mul(c.Gravity)
	case in.Jump:
		acc = geom.Up.Mul(c.JumpAccel)
	default:
		acc = fwd.Mul(c.DriveAccel * geom.Sign(-in.Forward))
	}

	horizontal := geom.Horizontal(s.Velocity)
	frontal := fwd.Mul(horizontal.Dot(fwd))
	lateral := horizontal.Sub(frontal)

	acc = acc.Add(lateral.Mul(c.LateralFriction * sim.driftFactor(frontal.Len(), dt)))
	acc = acc.Add(frontal.Mul(c.ForwardFriction))
	return acc
}

// driftFactor loosens sideways grip as frontal speed grows. Where the
// explicit step would no longer decay the slip (|lateralFriction|*dt*drift
// >= 2), it falls back to cancelling the slip in one tick.
func (sim *Simulator) driftFactor(frontalSpeed, dt float64) float64 {
	drift := 1.0
	if frontalSpeed > 0 {
		drift = sim.c.LateralFrictionBase / max(frontalSpeed, geom.Epsilon)
	}
	if k := math.Abs(sim.c.LateralFriction) * dt; k > 0 && drift*k >= 2 {
		drift = 1 / k
	}
	return drift
}
