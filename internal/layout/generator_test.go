package layout

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena/internal/geom"
	"arena/internal/rng"
)

const cubeSize = 75.0

func letterCubeParams() Params {
	return ParamsForBrick(cubeSize, 2, 5, 5, 9, 200, 100)
}

func wallAnchors() []mgl64.Vec3 {
	const d = 2800.0
	return []mgl64.Vec3{
		{0, 0, 0},
		{d, 0, 0},
		{-d, 0, 0},
		{0, 0, -d},
		{0, 0, d},
		{d, 0, -d},
		{-d, 0, -d},
		{d, 0, d},
		{-d, 0, d},
	}
}

func TestParams_Validate(t *testing.T) {
	good := letterCubeParams()
	require.NoError(t, good.Validate())

	cases := []struct {
		name string
		mut  func(p *Params)
	}{
		{name: "inverted rows", mut: func(p *Params) { p.MinRows, p.MaxRows = 6, 2 }},
		{name: "inverted cols", mut: func(p *Params) { p.MinCols, p.MaxCols = 10, 5 }},
		{name: "negative rows", mut: func(p *Params) { p.MinRows = -1 }},
		{name: "negative cols", mut: func(p *Params) { p.MinCols = -1 }},
		{name: "zero spacing", mut: func(p *Params) { p.Spacing = 0 }},
		{name: "negative spacing", mut: func(p *Params) { p.Spacing = -3 }},
		{name: "nan spacing", mut: func(p *Params) { p.Spacing = math.NaN() }},
		{name: "negative half height", mut: func(p *Params) { p.DistToCenter = -1 }},
		{name: "negative radius", mut: func(p *Params) { p.OffsetRadius = -1 }},
		{name: "negative bound", mut: func(p *Params) { p.DirectionBound = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := good
			c.mut(&p)
			err := p.Validate()
			require.ErrorIs(t, err, ErrInvalidParams)

			_, err = New(p)
			require.ErrorIs(t, err, ErrInvalidParams)

			_, err = Generate(1, wallAnchors(), p)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(5, wallAnchors(), letterCubeParams())
	require.NoError(t, err)
	b, err := Generate(5, wallAnchors(), letterCubeParams())
	require.NoError(t, err)

	require.NotEmpty(t, a)
	require.Equal(t, a, b)
	assert.Equal(t, Digest(a), Digest(b))
}

func TestGenerate_SeedChangesLayout(t *testing.T) {
	a, err := Generate(5, wallAnchors(), letterCubeParams())
	require.NoError(t, err)
	b, err := Generate(6, wallAnchors(), letterCubeParams())
	require.NoError(t, err)
	assert.NotEqual(t, Digest(a), Digest(b))
}

func TestGenerate_MatchesSharedStreamClusters(t *testing.T) {
	g, err := New(letterCubeParams())
	require.NoError(t, err)

	flat := g.Generate(11, wallAnchors())
	clusters := g.Clusters(rng.New(11), wallAnchors())
	require.Len(t, clusters, len(wallAnchors()))
	assert.Equal(t, flat, Flatten(clusters))

	// Generating anchors one at a time from separate streams is a different
	// algorithm and must not be confused with the shared-stream output.
	var split []Placement
	for _, a := range wallAnchors() {
		split = append(split, g.Generate(11, []mgl64.Vec3{a})...)
	}
	assert.NotEqual(t, Digest(flat), Digest(split))
}

func TestGenerate_ColumnsShrinkMonotonically(t *testing.T) {
	p := letterCubeParams()
	p.MinCols, p.MaxCols = 0, 12
	g, err := New(p)
	require.NoError(t, err)

	sawEarlyStop := false
	for seed := uint64(0); seed < 200; seed++ {
		for _, c := range g.Clusters(rng.New(seed), wallAnchors()) {
			require.LessOrEqual(t, len(c.Rows), p.MaxRows)
			for i, row := range c.Rows {
				require.Equal(t, i, row.Index)
				require.Positive(t, row.Columns)
				require.Len(t, row.Placements, row.Columns)
				if i > 0 {
					require.LessOrEqual(t, row.Columns, c.Rows[i-1].Columns)
				}
			}
			if len(c.Rows) < p.MinRows {
				sawEarlyStop = true
			}
		}
	}
	assert.True(t, sawEarlyStop, "zero-column clusters never stopped early")
}

func TestGenerate_NarrowRowsNeverShrink(t *testing.T) {
	for _, cols := range []int{1, 2, 3} {
		p := ParamsForBrick(cubeSize, 5, 5, cols, cols, 200, 100)
		g, err := New(p)
		require.NoError(t, err)
		for seed := uint64(0); seed < 200; seed++ {
			for _, c := range g.Clusters(rng.New(seed), wallAnchors()) {
				require.Len(t, c.Rows, 5)
				for _, row := range c.Rows {
					require.Equal(t, cols, row.Columns, "seed %d cols %d row %d", seed, cols, row.Index)
				}
			}
		}
	}

	// Four columns can lose one.
	p := ParamsForBrick(cubeSize, 5, 5, 4, 4, 200, 100)
	g, err := New(p)
	require.NoError(t, err)
	shrank := false
	for seed := uint64(0); seed < 50 && !shrank; seed++ {
		for _, c := range g.Clusters(rng.New(seed), wallAnchors()) {
			for _, row := range c.Rows {
				require.GreaterOrEqual(t, row.Columns, 3)
				if row.Columns == 3 {
					shrank = true
				}
			}
		}
	}
	assert.True(t, shrank)
}

func TestGenerate_DrawOrder(t *testing.T) {
	p := ParamsForBrick(cubeSize, 2, 5, 5, 9, 200, 100)
	g, err := New(p)
	require.NoError(t, err)

	for seed := uint64(0); seed < 50; seed++ {
		c := g.Clusters(rng.New(seed), []mgl64.Vec3{{0, 0, 0}})[0]

		r := rng.New(seed)
		planarDirection(r, p.DirectionBound)
		r.Range(0, p.OffsetRadius-1)
		planarDirection(r, p.DirectionBound)
		cols := r.Range(p.MinCols, p.MaxCols)
		rows := r.Range(p.MinRows, p.MaxRows)

		require.Equal(t, cols, c.Rows[0].Columns, "seed %d", seed)
		require.Len(t, c.Rows, rows, "seed %d", seed)
	}
}

func TestPlanarDirection_HalfOpenBound(t *testing.T) {
	r := rng.New(17)
	sawX, sawZ := false, false
	for i := 0; i < 500; i++ {
		d := planarDirection(r, 1)
		if d == geom.Right {
			continue
		}
		require.LessOrEqual(t, d.X(), 0.0)
		require.LessOrEqual(t, d.Z(), 0.0)
		sawX = sawX || d.X() < 0
		sawZ = sawZ || d.Z() < 0
	}
	assert.True(t, sawX)
	assert.True(t, sawZ)
}

func TestGenerate_OffsetRadiusIsExclusive(t *testing.T) {
	p := ParamsForBrick(cubeSize, 1, 1, 2, 2, 1, 100)
	g, err := New(p)
	require.NoError(t, err)
	for seed := uint64(0); seed < 100; seed++ {
		c := g.Clusters(rng.New(seed), []mgl64.Vec3{{10, 0, 20}})[0]
		require.Equal(t, c.Anchor, c.Start, "seed %d", seed)
	}
}

func TestGenerate_MasonryRule(t *testing.T) {
	p := letterCubeParams()
	g, err := New(p)
	require.NoError(t, err)

	sawSame, sawChanged := false, false
	for seed := uint64(0); seed < 100; seed++ {
		for _, c := range g.Clusters(rng.New(seed), wallAnchors()) {
			require.Equal(t, 0.0, c.Rows[0].Offset)
			for i := 1; i < len(c.Rows); i++ {
				prev, cur := c.Rows[i-1], c.Rows[i]
				if cur.Columns == prev.Columns {
					sawSame = true
					want := prev.Offset
					if i%2 == 1 {
						want += p.Spacing / 2
					}
					require.Equal(t, want, cur.Offset, "seed %d row %d", seed, i)
				} else {
					sawChanged = true
					require.Equal(t, float64(i)*p.Spacing/2, cur.Offset, "seed %d row %d", seed, i)
				}
			}
		}
	}
	assert.True(t, sawSame)
	assert.True(t, sawChanged)
}

func TestNextOffset_Scenario(t *testing.T) {
	const s = 10.0
	// Three columns for two rows, then two.
	off := nextOffset(0, 3, 3, 0, s)
	assert.Equal(t, 0.0, off)
	off = nextOffset(1, 3, 3, off, s)
	assert.Equal(t, s/2, off)
	off = nextOffset(2, 2, 3, off, s)
	assert.Equal(t, s, off)
	// Unchanged even row keeps the offset.
	off = nextOffset(3, 2, 2, off, s)
	assert.Equal(t, s+s/2, off)
	off = nextOffset(4, 2, 2, off, s)
	assert.Equal(t, s+s/2, off)
}

func TestGenerate_SingleRowFourBricks(t *testing.T) {
	p := ParamsForBrick(cubeSize, 1, 1, 4, 4, 200, 100)
	g, err := New(p)
	require.NoError(t, err)

	clusters := g.Clusters(rng.New(5), []mgl64.Vec3{{0, 0, 0}})
	require.Len(t, clusters, 1)
	c := clusters[0]
	require.Len(t, c.Rows, 1)
	assert.Equal(t, 0.0, c.Rows[0].Offset)

	ps := c.Placements()
	require.Len(t, ps, 4)
	for j, pl := range ps {
		assert.InDelta(t, p.DistToCenter, pl.Position.Y(), 1e-9)
		want := c.Start.Add(c.Direction.Mul(float64(j) * p.Spacing))
		want[1] = p.DistToCenter
		for k := range want {
			assert.InDelta(t, want[k], pl.Position[k], 1e-9, "brick %d at %v want %v", j, pl.Position, want)
		}
		if j > 0 {
			assert.InDelta(t, p.Spacing, pl.Position.Sub(ps[j-1].Position).Len(), 1e-9)
		}
	}
	assert.InDelta(t, 1, c.Direction.Len(), 1e-12)
	assert.LessOrEqual(t, geom.Horizontal(c.Start.Sub(c.Anchor)).Len(), float64(p.OffsetRadius)+1e-9)
}

func TestGenerate_RowHeights(t *testing.T) {
	p := ParamsForBrick(cubeSize, 4, 4, 8, 8, 0, 100)
	g, err := New(p)
	require.NoError(t, err)

	anchor := mgl64.Vec3{100, 3, -50}
	c := g.Clusters(rng.New(1), []mgl64.Vec3{anchor})[0]
	assert.Equal(t, anchor, c.Start)
	for _, row := range c.Rows {
		want := anchor.Y() + p.DistToCenter + float64(row.Index)*2*p.DistToCenter
		for _, pl := range row.Placements {
			assert.InDelta(t, want, pl.Position.Y(), 1e-9)
		}
	}
}

func TestGenerate_ZeroColumnsProducesNothing(t *testing.T) {
	p := ParamsForBrick(cubeSize, 3, 3, 0, 0, 200, 100)
	ps, err := Generate(3, wallAnchors(), p)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestGenerate_DegenerateDirectionFallsBack(t *testing.T) {
	p := ParamsForBrick(cubeSize, 1, 1, 3, 3, 50, 0)
	g, err := New(p)
	require.NoError(t, err)

	c := g.Clusters(rng.New(9), []mgl64.Vec3{{0, 0, 0}})[0]
	assert.Equal(t, geom.Right, c.Direction)
	for _, pl := range c.Placements() {
		assert.False(t, math.IsNaN(pl.Position.X()))
		assert.Equal(t, 0.0, pl.Position.Z())
	}
}

func TestGenerate_IndependentYawPerBrick(t *testing.T) {
	p := ParamsForBrick(cubeSize, 1, 1, 6, 6, 0, 100)
	ps, err := Generate(5, []mgl64.Vec3{{0, 0, 0}}, p)
	require.NoError(t, err)
	require.Len(t, ps, 6)

	distinct := map[float64]bool{}
	for _, pl := range ps {
		require.GreaterOrEqual(t, pl.Yaw, 0.0)
		require.Less(t, pl.Yaw, 2*math.Pi)
		distinct[pl.Yaw] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func TestDigest_EmptyAndOrder(t *testing.T) {
	assert.Equal(t, Digest(nil), Digest([]Placement{}))

	a := Placement{Position: mgl64.Vec3{1, 2, 3}, Yaw: 0.5}
	b := Placement{Position: mgl64.Vec3{4, 5, 6}, Yaw: 1.5}
	assert.NotEqual(t, Digest([]Placement{a, b}), Digest([]Placement{b, a}))
}
