// Package game is the windowed front-end: a glfw window, a GL renderer over the
// arena scene and procedural audio, all driven by an arena.Session.
package game

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"arena/internal/arena"
	"arena/internal/config"
)

// DebugEvery is the interval in seconds between vehicle debug lines.
const DebugEvery = 1.0

// Run opens the window and plays until it is closed or Escape is pressed.
func Run(cfg config.Config, logger zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	session, err := arena.New(cfg, logger)
	if err != nil {
		return err
	}

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Info().
		Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Msg("window created")

	var audio *AudioSystem
	if cfg.Audio.Enabled {
		audio, err = NewAudio(cfg.Audio, session.Speed, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
			audio = nil
		}
		defer audio.Close()
	}
	session.Events.Subscribe(arena.EventJump, func(arena.Event) { audio.Play(SoundJump, 1) })
	session.Events.Subscribe(arena.EventLanding, func(e arena.Event) { audio.Play(SoundLanding, landingGain(e.Speed)) })
	session.Events.Subscribe(arena.EventReset, func(arena.Event) { audio.Play(SoundReset, 1) })

	// GL state.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Disable(gl.CULL_FACE)
	sky := Palette.Sky.Vec()
	gl.ClearColor(sky[0], sky[1], sky[2], 1.0)

	rend, err := NewRenderer(session.Scene, cfg.Camera.Far)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	input := NewInput()
	nextDebug := DebugEvery

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > arena.MaxTick {
			dt = arena.MaxTick
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyR) {
			session.Reset()
		}

		session.Tick(Keys(window).Input(), dt)
		if session.Elapsed >= nextDebug {
			nextDebug += DebugEvery
			p := session.State.Position
			logger.Debug().
				Float64("x", p.X()).Float64("y", p.Y()).Float64("z", p.Z()).
				Float64("yaw", session.State.Yaw).
				Float64("speed", session.Speed()).
				Bool("grounded", session.State.Grounded()).
				Msg("vehicle")
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.BeginFrame(session.Camera, fbW, fbH)
		rend.DrawScene()
		rend.DrawVehicle(session.Sim.Matrix(session.State))
		window.SwapBuffers()
	}

	logger.Info().Uint64("ticks", session.Ticks).Float64("elapsed", session.Elapsed).Msg("window closed")
	return nil
}
