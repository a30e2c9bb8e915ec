package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena/internal/layout"
	"arena/internal/vehicle"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, uint64(5), c.Seed)
	assert.Equal(t, vehicle.DefaultConstants(), c.Physics.Constants())
	assert.Equal(t, layout.ParamsForBrick(75, 2, 5, 5, 9, 200, 100), c.LayoutParams())
	assert.Equal(t, 8000.0, c.Arena.GroundSize)
	assert.Equal(t, [3]float64{800, 0, 2400}, c.Arena.PenOffset)
}

func TestLoad(t *testing.T) {
	// No files is the default.
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	dir := t.TempDir()

	// Partial overrides keep untouched defaults.
	{
		path := writeFile(t, dir, "seed.yaml", `
seed: 42
physics:
  gravity: -1000
`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), c.Seed)
		assert.Equal(t, -1000.0, c.Physics.Gravity)
		assert.Equal(t, 50000.0, c.Physics.JumpAccel)
		assert.Equal(t, 1280, c.Window.Width)
	}

	// Later files win.
	{
		a := writeFile(t, dir, "a.yaml", "layout:\n  max_cols: 12\n  min_cols: 3\n")
		b := writeFile(t, dir, "b.yaml", "layout:\n  max_cols: 7\n")
		c, err := Load(a, b)
		require.NoError(t, err)
		assert.Equal(t, 3, c.Layout.MinCols)
		assert.Equal(t, 7, c.Layout.MaxCols)
	}

	// An empty file changes nothing.
	{
		path := writeFile(t, dir, "empty.yaml", "")
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	typo := writeFile(t, dir, "typo.yaml", "physics:\n  gravitty: -10\n")
	_, err = Load(typo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")

	bad := writeFile(t, dir, "bad.yaml", "layout:\n  min_rows: 6\n  max_rows: 2\n")
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalid)
	require.ErrorIs(t, err, layout.ErrInvalidParams)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(c *Config)
	}{
		{name: "zero width", mut: func(c *Config) { c.Window.Width = 0 }},
		{name: "flat fov", mut: func(c *Config) { c.Window.FOV = 180 }},
		{name: "no ground", mut: func(c *Config) { c.Arena.GroundSize = 0 }},
		{name: "infinite ground", mut: func(c *Config) { c.Arena.GroundSize = math.Inf(1) }},
		{name: "anchors outside walls", mut: func(c *Config) { c.Arena.AnchorSpread = 0.8 }},
		{name: "coarse tessellation", mut: func(c *Config) { c.Arena.Tessellation = 2 }},
		{name: "negative ramps", mut: func(c *Config) { c.Arena.Ramps = -1 }},
		{name: "zero brick", mut: func(c *Config) { c.Layout.BrickSize = 0 }},
		{name: "negative radius", mut: func(c *Config) { c.Layout.OffsetRadius = -1 }},
		{name: "zero scale", mut: func(c *Config) { c.Physics.Scale = 0 }},
		{name: "pushing friction", mut: func(c *Config) { c.Physics.LateralFriction = 5 }},
		{name: "inverted clip", mut: func(c *Config) { c.Camera.Far = 0.5 }},
		{name: "loud", mut: func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mut(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Seed = 99
	raw, err := c.Marshal()
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "dump.yaml", string(raw))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
