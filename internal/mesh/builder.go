// Package mesh builds indexed triangle lists for the arena's primitive
// shapes. Builders work in float64 and narrow to float32 as vertices are
// appended, which is the layout the renderer uploads directly.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/geom"
)

// Vertex is interleaved position, normal and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Stride is the byte size of one Vertex in a GL buffer.
const (
	Stride         = 8 * 4
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4
)

// Builder accumulates vertices and triangle indices.
type Builder struct {
	Vertices []Vertex
	Indices  []uint32
}

// Next is the index the next appended vertex will get.
func (b *Builder) Next() uint32 { return uint32(len(b.Vertices)) }

func (b *Builder) AddVertex(pos, normal mgl64.Vec3, uv mgl64.Vec2) {
	b.Vertices = append(b.Vertices, Vertex{
		Position: vec3f(pos),
		Normal:   vec3f(normal),
		UV:       [2]float32{float32(uv[0]), float32(uv[1])},
	})
}

func (b *Builder) AddIndex(idx ...uint32) {
	b.Indices = append(b.Indices, idx...)
}

// AddQuad appends a flat quad a-b-c-d as two triangles sharing the a-c
// diagonal.
func (b *Builder) AddQuad(a, bb, c, d, normal mgl64.Vec3) {
	base := b.Next()
	b.AddIndex(base, base+1, base+2, base, base+2, base+3)
	b.AddVertex(a, normal, mgl64.Vec2{0, 0})
	b.AddVertex(bb, normal, mgl64.Vec2{0, 1})
	b.AddVertex(c, normal, mgl64.Vec2{1, 1})
	b.AddVertex(d, normal, mgl64.Vec2{1, 0})
}

// Append merges o into b, rebasing its indices.
func (b *Builder) Append(o Builder) {
	base := b.Next()
	b.Vertices = append(b.Vertices, o.Vertices...)
	for _, i := range o.Indices {
		b.Indices = append(b.Indices, base+i)
	}
}

func (b *Builder) Triangles() int { return len(b.Indices) / 3 }

// Bounds returns the axis-aligned extent of the vertices.
func (b *Builder) Bounds() (lo, hi mgl64.Vec3) {
	if len(b.Vertices) == 0 {
		return
	}
	lo = vec3d(b.Vertices[0].Position)
	hi = lo
	for _, v := range b.Vertices[1:] {
		p := vec3d(v.Position)
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

func vec3f(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func vec3d(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func unit(v, fallback mgl64.Vec3) mgl64.Vec3 { return geom.SafeNormalize(v, fallback) }
