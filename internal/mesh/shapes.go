package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/geom"
)

// MinTessellation is the lowest segment count for round shapes.
const MinTessellation = 3

var faceNormals = [6]mgl64.Vec3{
	geom.Backward, geom.Forward,
	geom.Right, geom.Left,
	geom.Up, geom.Down,
}

// Box is a cuboid centred on the origin with full extents size.
func Box(size mgl64.Vec3) Builder {
	var b Builder
	for _, n := range faceNormals {
		side1 := mgl64.Vec3{n[1], n[2], n[0]}
		side2 := n.Cross(side1)
		e1, e2, e3 := extent(side1, size), extent(side2, size), extent(n, size)

		c := n.Mul(e3)
		s1, s2 := side1.Mul(e1), side2.Mul(e2)
		b.AddQuad(
			c.Sub(s1).Sub(s2),
			c.Sub(s1).Add(s2),
			c.Add(s1).Add(s2),
			c.Add(s1).Sub(s2),
			n,
		)
	}
	return b
}

// Prism is a Box described by its footprint and height.
func Prism(width, depth, height float64) Builder {
	return Box(mgl64.Vec3{width, height, depth})
}

// extent is the half size of a box along a unit axis.
func extent(axis, size mgl64.Vec3) float64 {
	return (math.Abs(axis[0])*size[0] + math.Abs(axis[1])*size[1] + math.Abs(axis[2])*size[2]) / 2
}

// Plane is a single quad centred on origin, facing face, with its height
// measured along up. UVs run from 0 to repeat on both axes.
func Plane(origin, face, up mgl64.Vec3, width, height, repeat float64) Builder {
	normal := unit(face, geom.Up)
	upDir := unit(up, geom.Forward)
	left := unit(normal.Cross(upDir), geom.Left).Mul(width / 2)
	vertical := upDir.Mul(height / 2)

	topLeft := origin.Add(left).Add(vertical)
	topRight := origin.Sub(left).Add(vertical)
	bottomLeft := origin.Add(left).Sub(vertical)
	bottomRight := origin.Sub(left).Sub(vertical)

	var b Builder
	base := b.Next()
	b.AddVertex(bottomLeft, normal, mgl64.Vec2{0, repeat})
	b.AddVertex(topLeft, normal, mgl64.Vec2{0, 0})
	b.AddVertex(bottomRight, normal, mgl64.Vec2{repeat, repeat})
	b.AddVertex(topRight, normal, mgl64.Vec2{repeat, 0})
	b.AddIndex(base, base+1, base+2, base+2, base+1, base+3)
	return b
}

// TriangularPrism extrudes the triangle v1 v2 v3 by depth, centred on the
// triangle's plane.
func TriangularPrism(v1, v2, v3 mgl64.Vec3, depth float64) Builder {
	n := unit(v2.Sub(v1).Cross(v3.Sub(v2)), geom.Backward)
	half := n.Mul(depth / 2)

	var b Builder
	base := b.Next()
	b.AddIndex(base, base+1, base+2)
	b.AddVertex(v1.Sub(half), n.Mul(-1), mgl64.Vec2{0, 1})
	b.AddVertex(v2.Sub(half), n.Mul(-1), mgl64.Vec2{0.5, 0})
	b.AddVertex(v3.Sub(half), n.Mul(-1), mgl64.Vec2{1, 1})

	base = b.Next()
	b.AddIndex(base, base+1, base+2)
	b.AddVertex(v1.Add(half), n, mgl64.Vec2{0, 1})
	b.AddVertex(v3.Add(half), n, mgl64.Vec2{1, 1})
	b.AddVertex(v2.Add(half), n, mgl64.Vec2{0.5, 0})

	for _, e := range [3][2]mgl64.Vec3{{v1, v2}, {v2, v3}, {v3, v1}} {
		p, q := e[0], e[1]
		out := unit(q.Sub(p).Cross(n), geom.Up)
		b.AddQuad(p.Sub(half), q.Sub(half), q.Add(half), p.Add(half), out)
	}
	return b
}

// Sphere is a latitude/longitude sphere with tessellation rings and twice as
// many segments.
func Sphere(diameter float64, tessellation int) Builder {
	rings := max(tessellation, MinTessellation)
	segments := rings * 2
	r := diameter / 2

	var b Builder
	for i := 0; i <= rings; i++ {
		lat := float64(i)*math.Pi/float64(rings) - math.Pi/2
		y, xz := math.Sin(lat), math.Cos(lat)
		for j := 0; j <= segments; j++ {
			lon := float64(j) * 2 * math.Pi / float64(segments)
			n := mgl64.Vec3{xz * math.Cos(lon), y, xz * math.Sin(lon)}
			uv := mgl64.Vec2{float64(j) / float64(segments), 1 - float64(i)/float64(rings)}
			b.AddVertex(n.Mul(r), n, uv)
		}
	}

	stride := uint32(segments + 1)
	for i := uint32(0); i < uint32(rings); i++ {
		for j := uint32(0); j < uint32(segments); j++ {
			a := i*stride + j
			c := a + stride
			b.AddIndex(a, c, a+1, a+1, c, c+1)
		}
	}
	return b
}

// Cylinder stands on the Y axis, centred on the origin, with capped ends.
func Cylinder(height, diameter float64, tessellation int) Builder {
	segments := max(tessellation, MinTessellation)
	r := diameter / 2
	top := geom.Up.Mul(height / 2)
	bottom := top.Mul(-1)

	var b Builder
	ring := func(j int) mgl64.Vec3 {
		a := float64(j) * 2 * math.Pi / float64(segments)
		return mgl64.Vec3{math.Cos(a), 0, math.Sin(a)}
	}

	base := b.Next()
	for j := 0; j <= segments; j++ {
		n := ring(j)
		u := float64(j) / float64(segments)
		b.AddVertex(n.Mul(r).Add(top), n, mgl64.Vec2{u, 0})
		b.AddVertex(n.Mul(r).Add(bottom), n, mgl64.Vec2{u, 1})
	}
	for j := uint32(0); j < uint32(segments); j++ {
		t0, b0 := base+2*j, base+2*j+1
		t1, b1 := t0+2, b0+2
		b.AddIndex(t0, b0, t1, t1, b0, b1)
	}

	for _, end := range []struct {
		centre, normal mgl64.Vec3
	}{{top, geom.Up}, {bottom, geom.Down}} {
		centre := b.Next()
		b.AddVertex(end.centre, end.normal, mgl64.Vec2{0.5, 0.5})
		for j := 0; j <= segments; j++ {
			n := ring(j)
			b.AddVertex(n.Mul(r).Add(end.centre), end.normal, mgl64.Vec2{0.5 + n[0]/2, 0.5 + n[2]/2})
		}
		for j := uint32(0); j < uint32(segments); j++ {
			b.AddIndex(centre, centre+1+j, centre+2+j)
		}
	}
	return b
}
