package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/geom"
)

// Kind tags the Shape variants.
type Kind int

const (
	KindPlane Kind = iota
	KindBox
	KindSphere
	KindCylinder
	KindPrism
	KindTriangularPrism
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindPrism:
		return "prism"
	case KindTriangularPrism:
		return "triangular-prism"
	}
	return "unknown"
}

// Shape is one of the primitive descriptions below. Geometry is in local
// space; placement lives on the Instance.
type Shape interface {
	Kind() Kind
}

type Plane struct {
	Face, Up      mgl64.Vec3
	Width, Height float64
	// Repeat is the texture tiling count across the plane.
	Repeat float64
}

type Box struct {
	Size mgl64.Vec3
}

type Sphere struct {
	Diameter     float64
	Tessellation int
}

type Cylinder struct {
	Height, Diameter float64
	Tessellation     int
}

// Prism is an upright block: Width along X, Depth along Z.
type Prism struct {
	Width, Depth, Height float64
}

// TriangularPrism is the triangle A B C extruded by Depth along its normal.
type TriangularPrism struct {
	A, B, C mgl64.Vec3
	Depth   float64
}

func (Plane) Kind() Kind           { return KindPlane }
func (Box) Kind() Kind             { return KindBox }
func (Sphere) Kind() Kind          { return KindSphere }
func (Cylinder) Kind() Kind        { return KindCylinder }
func (Prism) Kind() Kind           { return KindPrism }
func (TriangularPrism) Kind() Kind { return KindTriangularPrism }

// Group names the role an instance plays in the arena.
type Group string

const (
	GroupGround     Group = "ground"
	GroupWall       Group = "wall"
	GroupLetterCube Group = "letter-cube"
	GroupBall       Group = "ball"
	GroupPillar     Group = "pillar"
	GroupRamp       Group = "ramp"
	GroupPen        Group = "pen"
)

// Instance places a Shape in the world.
type Instance struct {
	Group     Group
	Shape     Shape
	Transform geom.Transform
}

func (in Instance) Matrix() mgl64.Mat4 { return in.Transform.Matrix() }
