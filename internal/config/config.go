// Package config loads the arena settings. The embedded default.yaml is
// always applied first; files given to Load are layered over it in order.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"arena/internal/layout"
	"arena/internal/vehicle"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// Seed drives the letter-cube layout.
	Seed    uint64  `yaml:"seed"`
	Window  Window  `yaml:"window"`
	Arena   Arena   `yaml:"arena"`
	Layout  Layout  `yaml:"layout"`
	Physics Physics `yaml:"physics"`
	Camera  Camera  `yaml:"camera"`
	Audio   Audio   `yaml:"audio"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	// FOV is the vertical field of view in degrees.
	FOV float64 `yaml:"fov"`
}

type Arena struct {
	GroundSize   float64    `yaml:"ground_size"`
	GroundRepeat float64    `yaml:"ground_repeat"`
	WallHeight   float64    `yaml:"wall_height"`
	AnchorSpread float64    `yaml:"anchor_spread"`
	Tessellation int        `yaml:"tessellation"`
	ObstacleSeed uint64     `yaml:"obstacle_seed"`
	Ramps        int        `yaml:"ramps"`
	RampSpread   float64    `yaml:"ramp_spread"`
	PenOffset    [3]float64 `yaml:"pen_offset"`
}

type Layout struct {
	BrickSize      float64 `yaml:"brick_size"`
	MinRows        int     `yaml:"min_rows"`
	MaxRows        int     `yaml:"max_rows"`
	MinCols        int     `yaml:"min_cols"`
	MaxCols        int     `yaml:"max_cols"`
	OffsetRadius   int     `yaml:"offset_radius"`
	DirectionBound int     `yaml:"direction_bound"`
}

type Physics struct {
	Gravity             float64 `yaml:"gravity"`
	JumpAccel           float64 `yaml:"jump_accel"`
	DriveAccel          float64 `yaml:"drive_accel"`
	RotationRate        float64 `yaml:"rotation_rate"`
	ForwardFriction     float64 `yaml:"forward_friction"`
	LateralFriction     float64 `yaml:"lateral_friction"`
	LateralFrictionBase float64 `yaml:"lateral_friction_base"`
	Scale               float64 `yaml:"scale"`
}

type Camera struct {
	Distance  float64 `yaml:"distance"`
	Height    float64 `yaml:"height"`
	Smoothing float64 `yaml:"smoothing"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the embedded configuration.
func Default() Config {
	var c Config
	if err := decode(defaultYAML, &c); err != nil {
		panic(fmt.Errorf("default config: %w", err))
	}
	return c
}

// Load applies each file over the defaults and validates the result.
func Load(paths ...string) (Config, error) {
	c := Default()
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decode(raw, &c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// decode overlays raw onto c. Unknown keys are errors so typos surface.
func decode(raw []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	w := c.Window
	check(w.Width > 0 && w.Height > 0, "window size %dx%d", w.Width, w.Height)
	check(w.FOV > 0 && w.FOV < 180, "window fov %v outside (0, 180)", w.FOV)

	a := c.Arena
	check(positive(a.GroundSize), "ground size %v", a.GroundSize)
	check(positive(a.GroundRepeat), "ground repeat %v", a.GroundRepeat)
	check(positive(a.WallHeight), "wall height %v", a.WallHeight)
	check(a.AnchorSpread >= 0 && a.AnchorSpread <= 0.5, "anchor spread %v outside [0, 0.5]", a.AnchorSpread)
	check(a.Tessellation >= 3, "tessellation %d below 3", a.Tessellation)
	check(a.Ramps >= 0, "ramp count %d", a.Ramps)
	check(a.RampSpread >= 0 && !math.IsInf(a.RampSpread, 0), "ramp spread %v", a.RampSpread)

	check(positive(c.Layout.BrickSize), "brick size %v", c.Layout.BrickSize)
	if err := c.LayoutParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}

	p := c.Physics
	check(positive(p.Scale), "vehicle scale %v", p.Scale)
	check(p.RotationRate >= 0, "rotation rate %v", p.RotationRate)
	check(p.JumpAccel >= 0 && p.DriveAccel >= 0, "jump/drive acceleration must not be negative")
	check(p.ForwardFriction <= 0 && p.LateralFriction <= 0, "friction coefficients must not be positive")
	check(p.LateralFrictionBase >= 0, "lateral friction base %v", p.LateralFrictionBase)

	cam := c.Camera
	check(positive(cam.Near) && cam.Far > cam.Near, "camera clip range [%v, %v]", cam.Near, cam.Far)
	check(cam.Distance >= 0 && cam.Smoothing >= 0, "camera distance and smoothing must not be negative")

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume %v outside [0, 1]", c.Audio.Volume)

	return errors.Join(errs...)
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// LayoutParams converts the layout section for the generator.
func (c Config) LayoutParams() layout.Params {
	l := c.Layout
	return layout.ParamsForBrick(l.BrickSize, l.MinRows, l.MaxRows, l.MinCols, l.MaxCols, l.OffsetRadius, l.DirectionBound)
}

// Constants converts the physics section for the simulator.
func (p Physics) Constants() vehicle.Constants {
	return vehicle.Constants{
		Gravity:             p.Gravity,
		JumpAccel:           p.JumpAccel,
		DriveAccel:          p.DriveAccel,
		RotationRate:        p.RotationRate,
		ForwardFriction:     p.ForwardFriction,
		LateralFriction:     p.LateralFriction,
		LateralFrictionBase: p.LateralFrictionBase,
		Scale:               p.Scale,
	}
}
