// Package arena ties the static scene, the simulated vehicle and the follow
// camera into one session that advances a tick at a time. Front-ends feed it
// input and read its state; it does no I/O of its own besides logging.
package arena

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"arena/internal/camera"
	"arena/internal/config"
	"arena/internal/scene"
	"arena/internal/vehicle"
)

const (
	// MaxTick is the longest frame integrated in one step.
	MaxTick = 0.1
	// LandingShakeSpeed is the impact speed above which landings shake the
	// camera.
	LandingShakeSpeed = 600.0
)

type Session struct {
	Config config.Config
	Scene  *scene.Scene
	Sim    *vehicle.Simulator
	Camera *camera.Follow
	Events *EventBus

	State vehicle.State
	Last  vehicle.Result

	Ticks   uint64
	Elapsed float64

	// speed holds the float64 bits of the latest horizontal speed so the
	// audio goroutine can read it.
	speed atomic.Uint64

	log zerolog.Logger
}

func New(cfg config.Config, logger zerolog.Logger) (*Session, error) {
	sc, err := scene.Build(cfg)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Config: cfg,
		Scene:  sc,
		Sim:    vehicle.NewSimulator(cfg.Physics.Constants()),
		Camera: camera.NewFollow(cfg.Camera, cfg.Window.FOV),
		Events: NewEventBus(),
		State:  vehicle.InitialState(),
		log:    logger,
	}
	s.Camera.Update(s.State, 0)

	counts := sc.Counts()
	logger.Info().
		Uint64("seed", cfg.Seed).
		Int("clusters", len(sc.Clusters)).
		Int("letter_cubes", counts[scene.GroupLetterCube]).
		Int("instances", len(sc.Instances)).
		Str("digest", DigestString(sc.Digest)).
		Msg("arena built")
	return s, nil
}

// DigestString formats a layout digest the way it is logged and printed.
func DigestString(d uint64) string { return fmt.Sprintf("%016x", d) }

// Tick advances the session by dt seconds, clamped to MaxTick.
func (s *Session) Tick(in vehicle.Input, dt float64) vehicle.Result {
	dt = min(dt, MaxTick)
	r := s.Sim.Advance(s.State, in, dt)
	s.State = r.State
	s.Last = r
	if dt > 0 {
		s.Ticks++
		s.Elapsed += dt
	}
	s.speed.Store(math.Float64bits(s.State.Speed()))

	switch {
	case dt > 0 && r.Grounded && in.Jump:
		s.log.Debug().Float64("t", s.Elapsed).Msg("jump")
		s.Events.Emit(Event{Type: EventJump, Position: s.State.Position, Speed: s.State.Speed()})
	case r.Clamped && !r.Grounded:
		impact := -r.State.Velocity.Y()
		s.log.Debug().Float64("t", s.Elapsed).Float64("impact", impact).Msg("landed")
		if impact > LandingShakeSpeed {
			s.Camera.AddShake(min(impact/100, 30), 0.3)
		}
		s.Events.Emit(Event{Type: EventLanding, Position: s.State.Position, Speed: impact})
	}

	s.Camera.Update(s.State, dt)
	s.Camera.UpdateShake(dt, s.Config.Seed^s.Ticks)
	return r
}

// Speed is the latest horizontal speed. Safe for concurrent use.
func (s *Session) Speed() float64 {
	return math.Float64frombits(s.speed.Load())
}

// Reset puts the vehicle back at the spawn point.
func (s *Session) Reset() {
	s.State = vehicle.InitialState()
	s.Last = vehicle.Result{State: s.State, Grounded: true}
	s.speed.Store(0)
	s.log.Info().Msg("vehicle reset")
	s.Events.Emit(Event{Type: EventReset, Position: s.State.Position})
}
