package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"arena/internal/arena"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Keys samples the driving controls. Arrow keys mirror WASD.
func Keys(window *glfw.Window) arena.Keys {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return arena.Keys{
		Forward: held(glfw.KeyW, glfw.KeyUp),
		Back:    held(glfw.KeyS, glfw.KeyDown),
		Left:    held(glfw.KeyA, glfw.KeyLeft),
		Right:   held(glfw.KeyD, glfw.KeyRight),
		Jump:    held(glfw.KeySpace),
	}
}
