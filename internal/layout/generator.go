// Package layout generates the decorative brick walls scattered around the
// arena. Output is a pure function of the seed, the anchor list and the
// params: every anchor draws from one shared stream in list order, so the
// same inputs always replay the same placements.
package layout

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/geom"
	"arena/internal/rng"
)

// Placement is the transform of a single brick.
type Placement struct {
	Position mgl64.Vec3
	Yaw      float64
}

func (p Placement) Transform() geom.Transform {
	return geom.Transform{Position: p.Position, Yaw: p.Yaw}
}

// Row is one course of bricks within a wall.
type Row struct {
	Index   int
	Columns int
	// Offset is the running masonry offset along the wall direction at
	// which the first brick of the row sits.
	Offset     float64
	Placements []Placement
}

// Cluster is the wall grown from one anchor.
type Cluster struct {
	Anchor    mgl64.Vec3
	Start     mgl64.Vec3
	Direction mgl64.Vec3
	// Rows may be fewer than drawn when the column count hits zero.
	Rows []Row
}

// Placements returns the cluster's bricks in generation order.
func (c Cluster) Placements() []Placement {
	var n int
	for _, r := range c.Rows {
		n += len(r.Placements)
	}
	out := make([]Placement, 0, n)
	for _, r := range c.Rows {
		out = append(out, r.Placements...)
	}
	return out
}

// Generator lays out walls for a validated Params.
type Generator struct {
	params Params
}

func New(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: p}, nil
}

func (g *Generator) Params() Params { return g.params }

// Generate is the one-shot form: validate, seed a stream, flatten.
func Generate(seed uint64, anchors []mgl64.Vec3, p Params) ([]Placement, error) {
	g, err := New(p)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return g.Generate(seed, anchors), nil
}

// Generate seeds a fresh stream and returns every placement, anchor-major.
func (g *Generator) Generate(seed uint64, anchors []mgl64.Vec3) []Placement {
	return Flatten(g.Clusters(rng.New(seed), anchors))
}

// Clusters grows one wall per anchor from r. The caller owns r; draws are
// taken strictly in anchor order.
func (g *Generator) Clusters(r *rng.Stream, anchors []mgl64.Vec3) []Cluster {
	out := make([]Cluster, 0, len(anchors))
	for _, a := range anchors {
		out = append(out, g.cluster(r, a))
	}
	return out
}

func (g *Generator) cluster(r *rng.Stream, anchor mgl64.Vec3) Cluster {
	p := g.params

	offsetDir := planarDirection(r, p.DirectionBound)
	radius := float64(r.Range(0, p.OffsetRadius-1))
	wallDir := planarDirection(r, p.DirectionBound)

	// Columns are drawn before rows.
	cols := r.Range(p.MinCols, p.MaxCols)
	rows := r.Range(p.MinRows, p.MaxRows)

	start := mgl64.Vec3{
		anchor[0] + float64(offsetDir[0]*radius),
		anchor[1],
		anchor[2] + float64(offsetDir[2]*radius),
	}

	c := Cluster{
		Anchor:    anchor,
		Start:     start,
		Direction: wallDir,
		Rows:      make([]Row, 0, rows),
	}

	lastCols := cols
	offset := 0.0
	for i := 0; i < rows; i++ {
		if cols == 0 {
			break
		}
		offset = nextOffset(i, cols, lastCols, offset, p.Spacing)

		height := p.DistToCenter + float64(float64(2*i)*p.DistToCenter)
		row := Row{
			Index:      i,
			Columns:    cols,
			Offset:     offset,
			Placements: make([]Placement, 0, cols),
		}
		for j := 0; j < cols; j++ {
			along := offset + float64(float64(j)*p.Spacing)
			row.Placements = append(row.Placements, Placement{
				Position: mgl64.Vec3{
					start[0] + float64(wallDir[0]*along),
					start[1] + height,
					start[2] + float64(wallDir[2]*along),
				},
				// Every brick gets its own yaw, not one per row.
				Yaw: r.Angle(),
			})
		}
		c.Rows = append(c.Rows, row)

		lastCols = cols
		// The shrink is drawn from [0, cols/2), so two or three columns
		// never shrink.
		cols -= r.Range(0, cols/2-1)
	}
	return c
}

// nextOffset applies the masonry rule for row i: an unchanged column count
// keeps staggering by half a brick on odd rows, a changed one restarts from
// i half-bricks.
func nextOffset(i, cols, lastCols int, running, spacing float64) float64 {
	if cols == lastCols {
		if i%2 == 1 {
			running += spacing / 2
		}
		return running
	}
	return float64(i) * spacing / 2
}

// planarDirection draws integer components in [-bound, bound) and returns
// the normalised ground-plane vector, or +X when both draws are zero.
// Squares are summed as integers so the length is bit-identical everywhere.
func planarDirection(r *rng.Stream, bound int) mgl64.Vec3 {
	x := r.Range(-bound, bound-1)
	z := r.Range(-bound, bound-1)
	l2 := x*x + z*z
	if l2 == 0 {
		return geom.Right
	}
	l := math.Sqrt(float64(l2))
	return mgl64.Vec3{float64(x) / l, 0, float64(z) / l}
}

// Flatten concatenates cluster placements in order.
func Flatten(clusters []Cluster) []Placement {
	var n int
	for _, c := range clusters {
		for _, r := range c.Rows {
			n += len(r.Placements)
		}
	}
	out := make([]Placement, 0, n)
	for _, c := range clusters {
		out = append(out, c.Placements()...)
	}
	return out
}
