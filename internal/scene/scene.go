// Package scene assembles the static arena: the floor and its walls, the
// generated letter-cube walls and the hand-placed obstacles. A Scene is
// built once and only read afterwards.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/config"
	"arena/internal/geom"
	"arena/internal/layout"
	"arena/internal/rng"
)

// Landmarks near the spawn point.
const (
	BallDiameter     = 200.0
	PillarHeight     = 400.0
	PillarDiameter   = 100.0
	LandmarkDistance = 500.0
)

// Ramp dimensions are drawn from these ranges.
const (
	RampMinWidth  = 250.0
	RampMaxWidth  = 350.0
	RampMinHeight = 100.0
	RampMaxHeight = 200.0
	RampMinDepth  = 80.0
	RampMaxDepth  = 200.0
)

// The pen is a ring of posts on a grid with one gap as its gate.
const (
	PenColumns    = 5
	PenRows       = 7
	PenPostWidth  = 50.0
	PenPostLength = 100.0
	PenPostHeight = 400.0
	PenSpacing    = 2 * PenPostLength
)

type Scene struct {
	Instances []Instance
	// Clusters are the letter-cube walls in generation order.
	Clusters []layout.Cluster
	// Digest fingerprints the letter-cube placements.
	Digest uint64
	// HalfExtent is half the ground's side length.
	HalfExtent float64
}

// Anchors are the nine letter-cube wall origins: the centre, the four axes
// and the four diagonals, spread*groundSize from the centre.
func Anchors(groundSize, spread float64) []mgl64.Vec3 {
	d := groundSize * spread
	dirs := []mgl64.Vec3{
		{},
		geom.Right,
		geom.Left,
		geom.Forward,
		geom.Backward,
		geom.Forward.Add(geom.Right),
		geom.Forward.Add(geom.Left),
		geom.Backward.Add(geom.Right),
		geom.Backward.Add(geom.Left),
	}
	out := make([]mgl64.Vec3, len(dirs))
	for i, dir := range dirs {
		out[i] = dir.Mul(d)
	}
	return out
}

// Build validates cfg and lays out the whole arena.
func Build(cfg config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	gen, err := layout.New(cfg.LayoutParams())
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	a := cfg.Arena
	s := &Scene{HalfExtent: a.GroundSize / 2}
	s.addShell(a)

	s.Clusters = gen.Clusters(rng.New(cfg.Seed), Anchors(a.GroundSize, a.AnchorSpread))
	placements := layout.Flatten(s.Clusters)
	s.Digest = layout.Digest(placements)
	size := cfg.Layout.BrickSize
	cube := Box{Size: mgl64.Vec3{size, size, size}}
	for _, p := range placements {
		s.add(GroupLetterCube, cube, p.Transform())
	}

	s.addLandmarks(a)
	s.addRamps(a)
	s.addPen(a)
	return s, nil
}

func (s *Scene) add(g Group, shape Shape, t geom.Transform) {
	s.Instances = append(s.Instances, Instance{Group: g, Shape: shape, Transform: t})
}

func (s *Scene) addShell(a config.Arena) {
	s.add(GroupGround, Plane{
		Face:   geom.Up,
		Up:     geom.Forward,
		Width:  a.GroundSize,
		Height: a.GroundSize,
		Repeat: a.GroundRepeat,
	}, geom.Transform{})

	for _, axis := range []mgl64.Vec3{geom.Left, geom.Right, geom.Forward, geom.Backward} {
		pos := axis.Mul(a.GroundSize / 2).Add(geom.Up.Mul(a.WallHeight / 2))
		s.add(GroupWall, Plane{
			Face:   axis.Mul(-1),
			Up:     geom.Up,
			Width:  a.GroundSize,
			Height: a.WallHeight,
			Repeat: 1,
		}, geom.Transform{Position: pos})
	}
}

func (s *Scene) addLandmarks(a config.Arena) {
	s.add(GroupBall, Sphere{Diameter: BallDiameter, Tessellation: a.Tessellation},
		geom.Transform{Position: geom.Backward.Mul(LandmarkDistance).Add(geom.Up.Mul(BallDiameter / 2))})
	s.add(GroupPillar, Cylinder{Height: PillarHeight, Diameter: PillarDiameter, Tessellation: a.Tessellation},
		geom.Transform{Position: geom.Left.Mul(LandmarkDistance).Add(geom.Up.Mul(PillarHeight / 2))})
}

// addRamps scatters triangular ramps from their own stream so the letter
// cubes and the ramps can be reseeded independently. All origins are drawn
// before any ramp's dimensions.
func (s *Scene) addRamps(a config.Arena) {
	r := rng.New(a.ObstacleSeed)
	origins := make([]mgl64.Vec3, a.Ramps)
	for i := range origins {
		x := r.RangeF(-a.RampSpread, a.RampSpread)
		z := r.RangeF(-a.RampSpread, a.RampSpread)
		origins[i] = mgl64.Vec3{x, 0, z}
	}
	for _, origin := range origins {
		width := r.RangeF(RampMinWidth, RampMaxWidth)
		height := r.RangeF(RampMinHeight, RampMaxHeight)
		depth := r.RangeF(RampMinDepth, RampMaxDepth)
		apex := r.RangeF(-width/2, width/2)
		yaw := r.Angle()
		s.add(GroupRamp, TriangularPrism{
			A:     geom.Left.Mul(width / 2),
			B:     geom.Right.Mul(apex).Add(geom.Up.Mul(height)),
			C:     geom.Right.Mul(width / 2),
			Depth: depth,
		}, geom.Transform{Position: origin, Yaw: yaw})
	}
}

// addPen rings a PenColumns x PenRows grid with posts. Columns step along
// +X and rows along -Z; the first column has a gate in its middle. End-row
// posts are pushed a quarter spacing away from the pen's centre.
func (s *Scene) addPen(a config.Arena) {
	offset := mgl64.Vec3(a.PenOffset)
	for i := 0; i < PenColumns; i++ {
		for j := 0; j < PenRows; j++ {
			side := i == 0 || i == PenColumns-1
			end := j == 0 || j == PenRows-1
			if !side && !end {
				continue
			}
			if i == 0 && j == PenRows/2 {
				continue
			}
			pos := offset.
				Add(geom.Right.Mul(float64(i) * PenSpacing)).
				Add(geom.Forward.Mul(float64(j) * PenSpacing))
			if !side {
				if j == 0 {
					pos = pos.Sub(geom.Forward.Mul(PenSpacing / 4))
				} else {
					pos = pos.Add(geom.Forward.Mul(PenSpacing / 4))
				}
			}
			post := Prism{Width: PenPostLength, Depth: PenPostWidth, Height: PenPostHeight}
			if side {
				post.Width, post.Depth = PenPostWidth, PenPostLength
			}
			s.add(GroupPen, post, geom.Transform{Position: pos.Add(geom.Up.Mul(PenPostHeight / 2))})
		}
	}
}

// Group returns the instances of one group in build order.
func (s *Scene) Group(g Group) []Instance {
	var out []Instance
	for _, in := range s.Instances {
		if in.Group == g {
			out = append(out, in)
		}
	}
	return out
}

// Counts tallies instances per group.
func (s *Scene) Counts() map[Group]int {
	out := make(map[Group]int)
	for _, in := range s.Instances {
		out[in.Group]++
	}
	return out
}
