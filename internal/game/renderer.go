package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/camera"
	"arena/internal/geom"
	"arena/internal/mesh"
	"arena/internal/scene"
)

// Lighting.
const (
	Ambient     = 0.35
	GroundCheck = 0.08
	FogFraction = 0.9
)

const vehicleBodyH = 120.0

var lightDir = mgl64.Vec3{-0.4, -1, -0.3}

// Vehicle placeholder parts in model space, before the vehicle scale.
var vehicleParts = []struct {
	shape  scene.Box
	offset mgl64.Vec3
	shade  uint8
}{
	{scene.Box{Size: mgl64.Vec3{200, vehicleBodyH, 400}}, mgl64.Vec3{0, vehicleBodyH / 2, 0}, 255},
	{scene.Box{Size: mgl64.Vec3{160, 90, 180}}, mgl64.Vec3{0, vehicleBodyH + 45, -40}, 170},
}

func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// gpuMesh is one uploaded index buffer and its vertex layout.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type drawItem struct {
	mesh    *gpuMesh
	model   [16]float32
	color   [3]float32
	checker float32
}

type Renderer struct {
	prog uint32

	uModel    int32
	uView     int32
	uProj     int32
	uColor    int32
	uLightDir int32
	uAmbient  int32
	uChecker  int32
	uFogColor int32
	uFogFar   int32

	// Meshes are shared between instances with equal shapes.
	meshes map[scene.Shape]*gpuMesh
	items  []drawItem

	vehicle []drawItem
	fogFar  float64
}

func NewRenderer(sc *scene.Scene, far float64) (*Renderer, error) {
	prog, err := linkProgram(sceneVertSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	r := &Renderer{
		prog:   prog,
		meshes: make(map[scene.Shape]*gpuMesh),
		fogFar: far * FogFraction,
	}
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uProj = gl.GetUniformLocation(prog, gl.Str("uProj\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uLightDir = gl.GetUniformLocation(prog, gl.Str("uLightDir\x00"))
	r.uAmbient = gl.GetUniformLocation(prog, gl.Str("uAmbient\x00"))
	r.uChecker = gl.GetUniformLocation(prog, gl.Str("uChecker\x00"))
	r.uFogColor = gl.GetUniformLocation(prog, gl.Str("uFogColor\x00"))
	r.uFogFar = gl.GetUniformLocation(prog, gl.Str("uFogFar\x00"))

	for _, in := range sc.Instances {
		m, err := r.meshFor(in.Shape)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("%s instance: %w", in.Group, err)
		}
		item := drawItem{
			mesh:  m,
			model: geom.ToMat32(in.Matrix()),
			color: GroupColor(in.Group).Vec(),
		}
		if in.Group == scene.GroupGround {
			item.checker = GroundCheck
		}
		r.items = append(r.items, item)
	}

	for _, p := range vehicleParts {
		m, err := r.meshFor(p.shape)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("vehicle: %w", err)
		}
		r.vehicle = append(r.vehicle, drawItem{mesh: m, color: Palette.Vehicle.Mul(p.shade).Vec()})
	}

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) meshFor(s scene.Shape) (*gpuMesh, error) {
	if m, ok := r.meshes[s]; ok {
		return m, nil
	}
	b, err := mesh.ForShape(s)
	if err != nil {
		return nil, err
	}
	m := upload(b)
	r.meshes[s] = m
	return m, nil
}

func upload(b mesh.Builder) *gpuMesh {
	m := &gpuMesh{count: int32(len(b.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Vertices)*mesh.Stride, gl.Ptr(&b.Vertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.Indices)*4, gl.Ptr(&b.Indices[0]), gl.STATIC_DRAW)

	// aPos
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.Stride, glOffset(0))
	// aNormal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.Stride, glOffset(mesh.NormalOffset))
	// aUV
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, mesh.Stride, glOffset(mesh.TexCoordOffset))

	gl.BindVertexArray(0)
	return m
}

func (r *Renderer) Destroy() {
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	r.meshes = nil
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
		r.prog = 0
	}
}

func (r *Renderer) BeginFrame(cam *camera.Follow, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.prog)
	view := geom.ToMat32(cam.View())
	proj := geom.ToMat32(cam.Projection(float64(fbW) / float64(fbH)))
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])

	l := lightDir.Normalize()
	gl.Uniform3f(r.uLightDir, float32(l[0]), float32(l[1]), float32(l[2]))
	gl.Uniform1f(r.uAmbient, Ambient)
	sky := Palette.Sky.Vec()
	gl.Uniform3f(r.uFogColor, sky[0], sky[1], sky[2])
	gl.Uniform1f(r.uFogFar, float32(r.fogFar))
}

func (r *Renderer) draw(it *drawItem) {
	gl.UniformMatrix4fv(r.uModel, 1, false, &it.model[0])
	gl.Uniform3f(r.uColor, it.color[0], it.color[1], it.color[2])
	gl.Uniform1f(r.uChecker, it.checker)
	gl.BindVertexArray(it.mesh.vao)
	gl.DrawElements(gl.TRIANGLES, it.mesh.count, gl.UNSIGNED_INT, nil)
}

// DrawScene draws every static instance.
func (r *Renderer) DrawScene() {
	for i := range r.items {
		r.draw(&r.items[i])
	}
	gl.BindVertexArray(0)
}

// DrawVehicle draws the placeholder body with the vehicle's model matrix.
func (r *Renderer) DrawVehicle(model mgl64.Mat4) {
	for i, p := range vehicleParts {
		it := &r.vehicle[i]
		it.model = geom.ToMat32(model.Mul4(mgl64.Translate3D(p.offset[0], p.offset[1], p.offset[2])))
		r.draw(it)
	}
	gl.BindVertexArray(0)
}
