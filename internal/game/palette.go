package game

import "arena/internal/scene"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Vec returns the colour as normalised floats for a uniform.
func (c RGB) Vec() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

var Palette = struct {
	Sky     RGB
	Vehicle RGB
	Groups  map[scene.Group]RGB
}{
	Sky:     RGB{R: 168, G: 196, B: 222},
	Vehicle: RGB{R: 206, G: 58, B: 48},
	Groups: map[scene.Group]RGB{
		scene.GroupGround:     {R: 118, G: 128, B: 104},
		scene.GroupWall:       {R: 153, G: 144, B: 133},
		scene.GroupLetterCube: {R: 214, G: 190, B: 153},
		scene.GroupBall:       {R: 206, G: 224, B: 64},
		scene.GroupPillar:     {R: 104, G: 108, B: 112},
		scene.GroupRamp:       {R: 195, G: 174, B: 142},
		scene.GroupPen:        {R: 86, G: 89, B: 88},
	},
}

// GroupColor falls back to the wall colour for groups without an entry.
func GroupColor(g scene.Group) RGB {
	if c, ok := Palette.Groups[g]; ok {
		return c
	}
	return Palette.Groups[scene.GroupWall]
}
