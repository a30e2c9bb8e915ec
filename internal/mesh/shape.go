package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/scene"
)

// ForShape builds the local-space mesh of a scene shape.
func ForShape(s scene.Shape) (Builder, error) {
	switch v := s.(type) {
	case scene.Plane:
		return Plane(mgl64.Vec3{}, v.Face, v.Up, v.Width, v.Height, v.Repeat), nil
	case scene.Box:
		return Box(v.Size), nil
	case scene.Sphere:
		return Sphere(v.Diameter, v.Tessellation), nil
	case scene.Cylinder:
		return Cylinder(v.Height, v.Diameter, v.Tessellation), nil
	case scene.Prism:
		return Prism(v.Width, v.Depth, v.Height), nil
	case scene.TriangularPrism:
		return TriangularPrism(v.A, v.B, v.C, v.Depth), nil
	}
	return Builder{}, fmt.Errorf("mesh: unsupported shape %T", s)
}
