package arena

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"arena/internal/vehicle"
)

// Keys is the held state of the driving controls.
type Keys struct {
	Forward, Back, Left, Right, Jump bool
}

// Input maps held keys to an input vector. Opposing keys cancel.
func (k Keys) Input() vehicle.Input {
	return vehicle.Input{
		Forward: axis(k.Forward, k.Back),
		Lateral: axis(k.Right, k.Left),
		Jump:    k.Jump,
	}
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Segment holds one set of keys for a span of time.
type Segment struct {
	Keys    Keys
	Seconds float64
}

// ParseScript reads a drive script such as "w:2,wd:1.5,j:0.05,-:3": comma
// separated keys:seconds pairs where w/s/a/d steer, j jumps and - idles.
func ParseScript(src string) ([]Segment, error) {
	var out []Segment
	for _, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys, secs, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("script segment %q: want keys:seconds", part)
		}
		d, err := strconv.ParseFloat(secs, 64)
		if err != nil || d < 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			return nil, fmt.Errorf("script segment %q: bad duration %q", part, secs)
		}
		seg := Segment{Seconds: d}
		for _, c := range keys {
			switch c {
			case 'w':
				seg.Keys.Forward = true
			case 's':
				seg.Keys.Back = true
			case 'a':
				seg.Keys.Left = true
			case 'd':
				seg.Keys.Right = true
			case 'j':
				seg.Keys.Jump = true
			case '-':
			default:
				return nil, fmt.Errorf("script segment %q: unknown key %q", part, c)
			}
		}
		out = append(out, seg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return out, nil
}

// Sample is one recorded tick of a scripted run.
type Sample struct {
	Tick     uint64  `yaml:"tick" json:"tick"`
	Time     float64 `yaml:"time" json:"time"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	Z        float64 `yaml:"z" json:"z"`
	Yaw      float64 `yaml:"yaw" json:"yaw"`
	Speed    float64 `yaml:"speed" json:"speed"`
	Grounded bool    `yaml:"grounded" json:"grounded"`
}

func (s *Session) sample() Sample {
	p := s.State.Position
	return Sample{
		Tick:     s.Ticks,
		Time:     s.Elapsed,
		X:        p[0],
		Y:        p[1],
		Z:        p[2],
		Yaw:      s.State.Yaw,
		Speed:    s.State.Speed(),
		Grounded: s.State.Grounded(),
	}
}

// Run plays script at a fixed dt and records every n-th tick plus the final
// one. Each segment lasts its duration rounded to whole ticks.
func (s *Session) Run(script []Segment, dt float64, every int) ([]Sample, error) {
	if !(dt > 0) || dt > MaxTick {
		return nil, fmt.Errorf("tick length %v outside (0, %v]", dt, MaxTick)
	}
	every = max(every, 1)

	out := []Sample{s.sample()}
	for _, seg := range script {
		in := seg.Keys.Input()
		n := int(math.Round(seg.Seconds / dt))
		for i := 0; i < n; i++ {
			s.Tick(in, dt)
			if s.Ticks%uint64(every) == 0 {
				out = append(out, s.sample())
			}
		}
	}
	if last := out[len(out)-1]; last.Tick != s.Ticks {
		out = append(out, s.sample())
	}
	return out, nil
}
